package beathost

import (
	"github.com/reusee/beat/beatvm"
)

type Diagnostics struct {
	Source       string
	CompileError error
	// last runtime error since the program was published, nil if none
	RuntimeError  error
	RuntimeErrors uint64
	// special variable values after the last processed frame, by name
	Variables   map[string]beatvm.Value
	Disassembly string
}

// Diagnostics is for display. It allocates and should not be called from the audio goroutine.
func (s *Session) Diagnostics() Diagnostics {
	s.mu.Lock()
	ret := Diagnostics{
		Source:       s.source,
		CompileError: s.compileErr,
	}
	s.mu.Unlock()

	if code := s.lastRuntimeErr.Load(); code != 0 {
		ret.RuntimeError = beatvm.RuntimeError(code)
	}
	ret.RuntimeErrors = s.runtimeErrs.Load()

	ret.Variables = make(map[string]beatvm.Value, len(specialVars))
	for i, c := range specialVars {
		ret.Variables[string(rune(c))] = s.lastVars[i].Load()
	}

	if program := s.program.Load(); program != nil {
		ret.Disassembly = beatvm.Disassemble(program.Ops())
	}
	return ret
}
