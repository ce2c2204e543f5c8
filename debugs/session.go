package debugs

import (
	"fmt"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/beatvm"
	"go.starlark.net/starlark"
)

// SessionGlobals exposes a session to starlark. The session must not be processing elsewhere while the globals are used.
func SessionGlobals(session *beathost.Session) map[string]any {
	return map[string]any{

		"source": session.Source,
		"tick":   session.Tick,

		"compile": starlark.NewBuiltin("compile", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var source string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &source); err != nil {
				return nil, err
			}
			if err := session.Compile(source); err != nil {
				return starlark.String(err.Error()), nil
			}
			return starlark.None, nil
		}),

		"run": starlark.NewBuiltin("run", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			n := 1
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &n); err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, fmt.Errorf("%s: bad frame count %d", b.Name(), n)
			}
			frames := make([]beathost.Frame, n)
			session.Process(frames)
			last := frames[n-1]
			return starlark.Tuple{
				starlark.MakeUint64(last[0]),
				starlark.MakeUint64(last[1]),
			}, nil
		}),

		"peek": starlark.NewBuiltin("peek", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
				return nil, err
			}
			return starlark.MakeUint64(session.Program().Peek(toValue(addr))), nil
		}),

		"poke": starlark.NewBuiltin("poke", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr, value starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &addr, &value); err != nil {
				return nil, err
			}
			session.Program().Poke(toValue(addr), toValue(value))
			return starlark.None, nil
		}),

		"get": starlark.NewBuiltin("get", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			c, err := varName(b, name)
			if err != nil {
				return nil, err
			}
			return starlark.MakeUint64(session.Program().Get(c)), nil
		}),

		"set": starlark.NewBuiltin("set", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var value starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &name, &value); err != nil {
				return nil, err
			}
			c, err := varName(b, name)
			if err != nil {
				return nil, err
			}
			session.Program().Set(c, toValue(value))
			return starlark.None, nil
		}),

		"cc": starlark.NewBuiltin("cc", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var controller, value starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &controller, &value); err != nil {
				return nil, err
			}
			session.ControlChange(toValue(controller), toValue(value))
			return starlark.None, nil
		}),

		"knob": starlark.NewBuiltin("knob", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var knob, value starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &knob, &value); err != nil {
				return nil, err
			}
			session.SetKnob(toValue(knob), toValue(value))
			return starlark.None, nil
		}),

		"note": starlark.NewBuiltin("note", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var note, velocity starlark.Int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &note, &velocity); err != nil {
				return nil, err
			}
			session.NoteOn(toValue(note), toValue(velocity))
			return starlark.None, nil
		}),

		"diagnostics": starlark.NewBuiltin("diagnostics", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			diag := session.Diagnostics()
			return toStarlarkValue(map[string]any{
				"source":         diag.Source,
				"compile_error":  errString(diag.CompileError),
				"runtime_error":  errString(diag.RuntimeError),
				"runtime_errors": diag.RuntimeErrors,
				"variables":      diag.Variables,
				"disassembly":    diag.Disassembly,
			}), nil
		}),
	}
}

// toValue wraps negative integers like the expression language does.
func toValue(i starlark.Int) beatvm.Value {
	if u, ok := i.Uint64(); ok {
		return u
	}
	if n, ok := i.Int64(); ok {
		return beatvm.Value(n)
	}
	// out of range, keep the low bits
	mask := starlark.MakeUint64(^uint64(0))
	u, _ := i.And(mask).Uint64()
	return u
}

func varName(b *starlark.Builtin, name string) (byte, error) {
	if len(name) != 1 {
		return 0, fmt.Errorf("%s: bad variable name %q", b.Name(), name)
	}
	return name[0], nil
}

func errString(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}
