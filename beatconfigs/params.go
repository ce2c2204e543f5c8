package beatconfigs

import (
	"os"
	"path/filepath"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/cmds"
	"github.com/reusee/beat/configs"
	"github.com/reusee/beat/presets"
	"github.com/reusee/beat/vars"
)

var (
	sampleRateFlag = cmds.Var[uint64]("rate", "sample rate")
	bitDepthFlag   = cmds.Var[uint64]("bits", "output bit depth, programs see w = 1 << bits")
	tempoFlag      = cmds.Var[uint64]("bpm", "tempo in beats per minute, for the q variable")
	presetsFlag    = cmds.Var[string]("presets", "preset database path")
)

func (Module) SampleRate(
	loader configs.Loader,
) beathost.SampleRate {
	return beathost.SampleRate(vars.FirstNonZero(
		*sampleRateFlag,
		configs.First[uint64](loader, "sample_rate"),
		44100,
	))
}

func (Module) BitDepth(
	loader configs.Loader,
) beathost.BitDepth {
	return beathost.BitDepth(vars.FirstNonZero(
		*bitDepthFlag,
		configs.First[uint64](loader, "bit_depth"),
		8,
	))
}

func (Module) Tempo(
	loader configs.Loader,
) beathost.Tempo {
	return beathost.Tempo(vars.FirstNonZero(
		*tempoFlag,
		configs.First[uint64](loader, "tempo"),
		120,
	))
}

func (Module) UserMemorySize(
	loader configs.Loader,
) beathost.UserMemorySize {
	return beathost.UserMemorySize(vars.FirstNonZero(
		configs.First[int](loader, "user_memory_size"),
		1024,
	))
}

func (Module) FallbackSource(
	loader configs.Loader,
) beathost.FallbackSource {
	return beathost.FallbackSource(vars.FirstNonZero(
		configs.First[string](loader, "fallback_source"),
		beathost.DefaultFallbackSource,
	))
}

func (Module) PresetsPath(
	loader configs.Loader,
) presets.Path {
	path := vars.FirstNonZero(
		*presetsFlag,
		configs.First[string](loader, "presets_path"),
	)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		path = filepath.Join(dir, "beat-presets.db")
	}
	return presets.Path(path)
}
