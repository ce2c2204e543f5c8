package beathost

import (
	"bytes"
	"errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/reusee/beat/beatlang"
	"github.com/reusee/beat/beatvm"
)

type State struct {
	Source      string         `cbor:"1,keyasint"`
	Tick        beatvm.Value   `cbor:"2,keyasint"`
	Note        beatvm.Value   `cbor:"3,keyasint"`
	Velocity    beatvm.Value   `cbor:"4,keyasint"`
	Controllers []beatvm.Value `cbor:"5,keyasint"`
	Knobs       []beatvm.Value `cbor:"6,keyasint"`
	// beatvm snapshot of the running program, absent when the source did not compile
	Program []byte `cbor:"7,keyasint,omitempty"`
}

// MarshalState encodes the session as CBOR. Call it while Process is not running.
func (s *Session) MarshalState() ([]byte, error) {
	s.mu.Lock()
	state := State{
		Source: s.source,
	}
	compiled := s.compileErr == nil && s.source != ""
	s.mu.Unlock()

	state.Tick = s.tick.Load()
	state.Note = s.note.Load()
	state.Velocity = s.velocity.Load()
	for i := range s.controllers {
		state.Controllers = append(state.Controllers, s.controllers[i].Load())
	}
	for i := range s.knobs {
		state.Knobs = append(state.Knobs, s.knobs[i].Load())
	}

	if compiled {
		buf := new(bytes.Buffer)
		if err := s.program.Load().Snapshot(buf); err != nil {
			return nil, wrap(err)
		}
		state.Program = buf.Bytes()
	}

	data, err := cbor.Marshal(state)
	if err != nil {
		return nil, wrap(err)
	}
	return data, nil
}

// UnmarshalState compiles the saved source and restores the saved state. Call it while Process is not running.
// A source that no longer compiles is not an error here; the fallback program runs and the compile error shows in Diagnostics.
func (s *Session) UnmarshalState(data []byte) error {
	var state State
	if err := cbor.Unmarshal(data, &state); err != nil {
		return wrap(err)
	}

	if err := s.Compile(state.Source); err != nil {
		var compileErr *beatlang.CompileError
		if !errors.As(err, &compileErr) {
			return err
		}
	} else if len(state.Program) > 0 {
		if err := s.program.Load().Restore(bytes.NewReader(state.Program)); err != nil {
			return wrap(err)
		}
	}

	s.tick.Store(state.Tick)
	s.note.Store(state.Note)
	s.velocity.Store(state.Velocity)
	for i, v := range state.Controllers {
		s.ControlChange(beatvm.Value(i), v)
	}
	for i, v := range state.Knobs {
		s.SetKnob(beatvm.Value(i), v)
	}
	return nil
}
