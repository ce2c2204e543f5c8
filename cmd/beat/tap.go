package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/cmds"
	"github.com/reusee/beat/debugs"
)

func init() {
	cmds.Define("tap", cmds.Func(func(file string) {
		actions = append(actions, func(
			tap debugs.Tap,
			newSession beathost.NewSession,
		) {
			session, err := loadSession(newSession, file)
			ce(err)
			// one second of history before the prompt
			session.Process(make([]beathost.Frame, session.SampleRate()))
			tap(context.Background(), file, debugs.SessionGlobals(session))
		})
	}).Desc("run a program file for one second, then open a starlark REPL over its session"))

	cmds.Define("script", cmds.Func(func(file string, script string) {
		actions = append(actions, func(
			exec debugs.Exec,
			newSession beathost.NewSession,
		) {
			session, err := loadSession(newSession, file)
			ce(err)
			content, err := os.ReadFile(script)
			ce(err)
			globals, err := exec(context.Background(), script, string(content), debugs.SessionGlobals(session))
			ce(err)
			names := make([]string, 0, len(globals))
			for name := range globals {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s = %s\n", name, globals[name])
			}
		})
	}).Desc("run a starlark script over a session running a program file, then print its globals"))
}

// loadSession compiles file into a new session. Compile errors are reported and leave the fallback running.
func loadSession(newSession beathost.NewSession, file string) (*beathost.Session, error) {
	source, err := readSource(file)
	if err != nil {
		return nil, err
	}
	session := newSession()
	if err := session.Compile(source); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return session, nil
}
