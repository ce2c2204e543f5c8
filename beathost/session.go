package beathost

import (
	"sync"
	"sync/atomic"

	"github.com/reusee/beat/beatlang"
	"github.com/reusee/beat/beatvm"
	"github.com/reusee/beat/logs"
)

type (
	SampleRate     uint64
	BitDepth       uint64
	Tempo          uint64 // beats per minute
	UserMemorySize int
	FallbackSource string
)

const (
	NumChannels = 2

	DefaultFallbackSource = "[*] = w / 2"

	MaxBitDepth = 32
)

// Frame is one sample per channel, left then right.
type Frame [NumChannels]beatvm.Value

// special variables written before every run
const (
	VarTick       = 't'
	VarMillis     = 'm'
	VarTicks128th = 'q'
	VarRange      = 'w'
	VarSampleRate = '~'
	VarNote       = 'n'
	VarVelocity   = 'v'
)

var specialVars = [...]byte{
	VarTick,
	VarMillis,
	VarTicks128th,
	VarRange,
	VarSampleRate,
	VarNote,
	VarVelocity,
}

// Session owns the running program of one host instance.
// Compile and the MIDI/knob setters may be called from any goroutine; Process must be called from a single audio goroutine.
type Session struct {
	logger   logs.Logger
	rate     beatvm.Value
	bitDepth beatvm.Value
	tempo    beatvm.Value
	memSize  int
	fallback string
	newRand  NewRand

	program atomic.Pointer[beatvm.Program]

	mu         sync.Mutex
	source     string
	compileErr error

	tick        atomic.Uint64
	note        atomic.Uint64
	velocity    atomic.Uint64
	controllers [beatvm.NumControllers]atomic.Uint64
	knobs       [beatvm.NumControls]atomic.Uint64

	lastRuntimeErr atomic.Uint32
	runtimeErrs    atomic.Uint64
	lastVars       [len(specialVars)]atomic.Uint64
}

type SessionOptions struct {
	SampleRate     SampleRate
	BitDepth       BitDepth
	Tempo          Tempo
	UserMemorySize UserMemorySize
	FallbackSource FallbackSource
}

func newSession(logger logs.Logger, newRand NewRand, options SessionOptions) *Session {
	s := &Session{
		logger:   logger,
		rate:     beatvm.Value(options.SampleRate),
		bitDepth: beatvm.Value(options.BitDepth),
		tempo:    beatvm.Value(options.Tempo),
		memSize:  int(options.UserMemorySize),
		fallback: string(options.FallbackSource),
		newRand:  newRand,
	}
	if s.rate == 0 {
		s.rate = 44100
	}
	if s.bitDepth == 0 || s.bitDepth > MaxBitDepth {
		s.bitDepth = 8
	}
	if s.tempo == 0 {
		s.tempo = 120
	}
	if s.fallback == "" {
		s.fallback = DefaultFallbackSource
	}
	s.publish(s.fallbackProgram())
	return s
}

// Compile replaces the running program. When source does not compile, the fallback program runs instead
// and the compile error is returned and kept for Diagnostics.
func (s *Session) Compile(source string) error {
	program, err := beatlang.Compile(source, s.memSize)
	if err != nil {
		s.logger.Warn("compile failed, using fallback program",
			"error", err,
		)
		program = s.fallbackProgram()
	} else {
		s.logger.Debug("compiled",
			"ops", len(program.Ops()),
		)
	}

	s.mu.Lock()
	s.source = source
	s.compileErr = err
	s.mu.Unlock()

	s.publish(program)
	return err
}

func (s *Session) fallbackProgram() *beatvm.Program {
	program, err := beatlang.Compile(s.fallback, s.memSize)
	if err != nil {
		s.logger.Error("fallback program does not compile",
			"error", err,
			"source", s.fallback,
		)
		program, err = beatlang.Compile(DefaultFallbackSource, s.memSize)
		if err != nil {
			panic(err)
		}
	}
	return program
}

func (s *Session) publish(program *beatvm.Program) {
	if s.newRand != nil {
		program.SetRand(s.newRand())
	}
	s.program.Store(program)
	s.lastRuntimeErr.Store(0)
}

// Program returns the running program. It must not be mutated while Process may run.
func (s *Session) Program() *beatvm.Program {
	return s.program.Load()
}

func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

func (s *Session) SampleRate() beatvm.Value {
	return s.rate
}

func (s *Session) Range() beatvm.Value {
	return 1 << s.bitDepth
}

func (s *Session) Tick() beatvm.Value {
	return s.tick.Load()
}

func (s *Session) SetTick(tick beatvm.Value) {
	s.tick.Store(tick)
}

func (s *Session) NoteOn(note, velocity beatvm.Value) {
	s.note.Store(note)
	s.velocity.Store(velocity)
}

// NoteOff silences the note if it is the current one.
func (s *Session) NoteOff(note beatvm.Value) {
	if s.note.Load() == note {
		s.velocity.Store(0)
	}
}

func (s *Session) ControlChange(controller, value beatvm.Value) {
	s.controllers[controller%beatvm.NumControllers].Store(value)
}

func (s *Session) SetKnob(knob, value beatvm.Value) {
	s.knobs[knob%beatvm.NumControls].Store(value)
}

func (s *Session) Knob(knob beatvm.Value) beatvm.Value {
	return s.knobs[knob%beatvm.NumControls].Load()
}
