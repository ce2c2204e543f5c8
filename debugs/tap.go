package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/beat/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Tap starts an interactive starlark REPL over globals, reading standard input until EOF.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, toStringDict(globals))
	}
}

// Exec runs a starlark script over globals and returns the globals it defines.
type Exec func(ctx context.Context, name string, script string, globals map[string]any) (starlark.StringDict, error)

func (Module) Exec(
	logger logs.Logger,
) Exec {
	return func(ctx context.Context, name string, script string, globals map[string]any) (starlark.StringDict, error) {
		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg,
					"script", name,
				)
			},
		}
		thread.SetLocal("context", ctx)
		ret, err := starlark.ExecFileOptions(fileOptions, thread, name, script, toStringDict(globals))
		if err != nil {
			return nil, wrap(err)
		}
		return ret, nil
	}
}

func toStringDict(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
