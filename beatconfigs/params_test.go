package beatconfigs

import (
	"path/filepath"
	"testing"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/configs"
	"github.com/reusee/beat/modes"
	"github.com/reusee/beat/presets"
	"github.com/reusee/dscope"
)

func testScope(t *testing.T, content string) dscope.Scope {
	return dscope.New(
		new(Module),
		new(beathost.Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(configs.NewSourceLoader([]configs.Source{
			{
				Name:    "test.cue",
				Content: []byte(content),
			},
		}, Schema)),
	)
}

func TestParams(t *testing.T) {
	testScope(t, `
sample_rate: 8000
bit_depth: 16
fallback_source: "[*] = t"
presets_path: "/tmp/presets.db"
`).Call(func(
		rate beathost.SampleRate,
		bits beathost.BitDepth,
		tempo beathost.Tempo,
		memSize beathost.UserMemorySize,
		fallback beathost.FallbackSource,
		presetsPath presets.Path,
	) {
		if rate != 8000 {
			t.Fatalf("got %d", rate)
		}
		if bits != 16 {
			t.Fatalf("got %d", bits)
		}
		if tempo != 120 {
			t.Fatalf("got %d", tempo)
		}
		if memSize != 1024 {
			t.Fatalf("got %d", memSize)
		}
		if fallback != "[*] = t" {
			t.Fatalf("got %q", fallback)
		}
		if presetsPath != "/tmp/presets.db" {
			t.Fatalf("got %q", presetsPath)
		}
	})
}

func TestParamsDefault(t *testing.T) {
	testScope(t, ``).Call(func(
		rate beathost.SampleRate,
		fallback beathost.FallbackSource,
		presetsPath presets.Path,
	) {
		if rate != 44100 {
			t.Fatalf("got %d", rate)
		}
		if fallback != beathost.DefaultFallbackSource {
			t.Fatalf("got %q", fallback)
		}
		if filepath.Base(string(presetsPath)) != "beat-presets.db" {
			t.Fatalf("got %q", presetsPath)
		}
	})
}

func TestSchemaViolation(t *testing.T) {
	loader := configs.NewSourceLoader([]configs.Source{
		{
			Name:    "test.cue",
			Content: []byte(`bit_depth: 64`),
		},
	}, Schema)
	if err := loader.Err(); err == nil {
		t.Fatal("expected error")
	}
}

func TestSession(t *testing.T) {
	testScope(t, `
fallback_source: "[*] = 42"
`).Call(func(
		newSession beathost.NewSession,
	) {
		session := newSession()
		if err := session.Compile("[*] = "); err == nil {
			t.Fatal("expected error")
		}
		frames := make([]beathost.Frame, 1)
		session.Process(frames)
		if frames[0][0] != 42 || frames[0][1] != 42 {
			t.Fatalf("got %v", frames[0])
		}
	})
}
