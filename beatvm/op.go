package beatvm

import "fmt"

type Value = uint64

type OpCode uint8

const (
	OpPushConst OpCode = iota + 1
	OpDiscard
	OpPeek
	OpPoke
	OpGetChannel
	OpSetChannel
	OpNeg
	OpBitNot
	OpNot
	OpSine
	OpSquare
	OpTriangle
	OpFrequency
	OpRandom
	OpCC
	OpVC
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpLt
	OpGt
	OpSelect
	// reserved, never emitted by the compiler
	OpJump

	numOpCodes
)

type Op struct {
	Code  OpCode
	Value Value
}

func (o OpCode) With(v Value) Op {
	return Op{
		Code:  o,
		Value: v,
	}
}

func (o OpCode) Op() Op {
	return Op{
		Code: o,
	}
}

// Arity is the number of stack values the opcode consumes. Every opcode pushes one value except Discard.
func (o OpCode) Arity() int {
	switch o {
	case OpPushConst:
		return 0
	case OpDiscard,
		OpPeek, OpGetChannel,
		OpNeg, OpBitNot, OpNot,
		OpSine, OpSquare, OpTriangle, OpFrequency, OpRandom,
		OpCC, OpVC:
		return 1
	case OpPoke, OpSetChannel,
		OpMul, OpDiv, OpMod, OpAdd, OpSub,
		OpShl, OpShr, OpAnd, OpOr, OpXor,
		OpLt, OpGt:
		return 2
	case OpSelect:
		return 3
	}
	return 0
}

var opNames = [numOpCodes]string{
	OpPushConst:  "push",
	OpDiscard:    "discard",
	OpPeek:       "peek",
	OpPoke:       "poke",
	OpGetChannel: "getch",
	OpSetChannel: "setch",
	OpNeg:        "neg",
	OpBitNot:     "bitnot",
	OpNot:        "not",
	OpSine:       "sine",
	OpSquare:     "square",
	OpTriangle:   "triangle",
	OpFrequency:  "freq",
	OpRandom:     "rand",
	OpCC:         "cc",
	OpVC:         "vc",
	OpMul:        "mul",
	OpDiv:        "div",
	OpMod:        "mod",
	OpAdd:        "add",
	OpSub:        "sub",
	OpShl:        "shl",
	OpShr:        "shr",
	OpAnd:        "and",
	OpOr:         "or",
	OpXor:        "xor",
	OpLt:         "lt",
	OpGt:         "gt",
	OpSelect:     "select",
	OpJump:       "jump",
}

func (o OpCode) String() string {
	if o < numOpCodes && opNames[o] != "" {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

func (o Op) String() string {
	if o.Code == OpPushConst {
		return fmt.Sprintf("%s %d", o.Code, o.Value)
	}
	return o.Code.String()
}
