package beathost

import (
	"math/rand/v2"

	"github.com/reusee/beat/beatvm"
	"github.com/reusee/beat/logs"
	"github.com/reusee/beat/modes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// NewRand creates the random source of a newly published program.
type NewRand func() beatvm.Rand

func (Module) NewRand(
	mode modes.Mode,
) NewRand {
	if mode.Deterministic() {
		return func() beatvm.Rand {
			return rand.New(rand.NewPCG(1, 2))
		}
	}
	return func() beatvm.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

type NewSession func() *Session

func (Module) NewSession(
	logger logs.Logger,
	newRand NewRand,
	sampleRate SampleRate,
	bitDepth BitDepth,
	tempo Tempo,
	memSize UserMemorySize,
	fallback FallbackSource,
) NewSession {
	return func() *Session {
		return newSession(logger, newRand, SessionOptions{
			SampleRate:     sampleRate,
			BitDepth:       bitDepth,
			Tempo:          tempo,
			UserMemorySize: memSize,
			FallbackSource: fallback,
		})
	}
}
