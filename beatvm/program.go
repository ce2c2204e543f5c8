package beatvm

import (
	"math/rand/v2"
	"slices"
)

const (
	// VariableMemorySize is the number of variable slots, one per byte value.
	VariableMemorySize = 256
	NumControllers     = 128
	NumControls        = 8
)

// ChannelAll is the channel index meaning every channel: sum on read, broadcast on write.
const ChannelAll = ^Value(0)

// Rand draws uniform values in [0, n). n is never zero.
type Rand interface {
	Uint64N(n uint64) uint64
}

// Program is a compiled instruction list bound to its memory.
// A Program is not safe for concurrent use.
type Program struct {
	ops            []Op
	userMemorySize int
	memory         []Value
	controllers    [NumControllers]Value
	controls       [NumControls]Value
	stack          []Value
	rand           Rand
}

func NewProgram(ops []Op, userMemorySize int) *Program {
	if userMemorySize < 0 {
		userMemorySize = 0
	}
	return &Program{
		ops:            slices.Clone(ops),
		userMemorySize: userMemorySize,
		memory:         make([]Value, userMemorySize+VariableMemorySize),
		stack:          make([]Value, 0, maxStackDepth(ops)),
		rand:           rand.New(rand.NewPCG(0x62656174, 0x76616c75)),
	}
}

// maxStackDepth simulates the stack effect of ops so Run never has to grow the stack.
func maxStackDepth(ops []Op) int {
	depth := 0
	max := 1
	for _, op := range ops {
		depth -= op.Code.Arity()
		if depth < 0 {
			depth = 0
		}
		if op.Code != OpDiscard {
			depth++
		}
		if depth > max {
			max = depth
		}
	}
	return max
}

func (p *Program) SetRand(r Rand) {
	p.rand = r
}

// Ops returns a copy of the instruction list.
func (p *Program) Ops() []Op {
	return slices.Clone(p.ops)
}

func (p *Program) UserMemorySize() int {
	return p.userMemorySize
}

func (p *Program) MemorySize() int {
	return len(p.memory)
}

// VarAddress is the memory address of the single character variable c.
func VarAddress(userMemorySize int, c byte) Value {
	return Value(userMemorySize) + Value(c)
}

func (p *Program) Get(c byte) Value {
	return p.memory[p.userMemorySize+int(c)]
}

func (p *Program) Set(c byte, v Value) {
	p.memory[p.userMemorySize+int(c)] = v
}

func (p *Program) Peek(addr Value) Value {
	return p.memory[addr%Value(len(p.memory))]
}

func (p *Program) Poke(addr Value, v Value) {
	p.memory[addr%Value(len(p.memory))] = v
}

func (p *Program) GetCC(i Value) Value {
	return p.controllers[i%NumControllers]
}

func (p *Program) SetCC(i Value, v Value) {
	p.controllers[i%NumControllers] = v
}

func (p *Program) GetVC(i Value) Value {
	return p.controls[i%NumControls]
}

func (p *Program) SetVC(i Value, v Value) {
	p.controls[i%NumControls] = v
}

// HasOutput reports whether the program contains a channel write.
func (p *Program) HasOutput() bool {
	return slices.ContainsFunc(p.ops, func(op Op) bool {
		return op.Code == OpSetChannel
	})
}
