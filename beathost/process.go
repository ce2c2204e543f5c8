package beathost

import (
	"github.com/reusee/beat/beatvm"
)

// Process runs the program once per frame. Each frame holds the input samples on entry and the output samples on return.
// Controller, knob and note state is sampled once per call, special variables are written before every frame. A runtime error only affects its own frame.
func (s *Session) Process(frames []Frame) {
	program := s.program.Load()
	if program == nil {
		return
	}

	for i := range s.controllers {
		program.SetCC(beatvm.Value(i), s.controllers[i].Load())
	}
	for i := range s.knobs {
		program.SetVC(beatvm.Value(i), s.knobs[i].Load())
	}
	note := s.note.Load()
	velocity := s.velocity.Load()
	w := s.Range()

	tick := s.tick.Load()
	for i := range frames {
		program.Set(VarTick, tick)
		program.Set(VarRange, w)
		program.Set(VarSampleRate, s.rate)
		program.Set(VarNote, note)
		program.Set(VarVelocity, velocity)
		program.Set(VarMillis, tick*1000/s.rate)
		program.Set(VarTicks128th, tick*s.tempo*32/(60*s.rate))

		if err := program.Run(frames[i][:]); err != nil {
			if e, ok := err.(beatvm.RuntimeError); ok {
				s.lastRuntimeErr.Store(uint32(e))
			}
			s.runtimeErrs.Add(1)
		}
		tick++
	}
	s.tick.Store(tick)

	for i, c := range specialVars {
		s.lastVars[i].Store(program.Get(c))
	}
}

// Sample maps v onto [-1, 1) using the configured bit depth.
func (s *Session) Sample(v beatvm.Value) float64 {
	w := s.Range()
	return float64(v%w)/float64(w)*2 - 1
}
