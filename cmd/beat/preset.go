package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/cmds"
	"github.com/reusee/beat/presets"
)

func init() {
	cmds.Define("preset", cmds.Sub(map[string]*cmds.Command{

		"save": cmds.Func(func(name string, file string) {
			actions = append(actions, func(
				openStore presets.OpenStore,
				newSession beathost.NewSession,
			) {
				ctx := context.Background()
				session, err := loadSession(newSession, file)
				ce(err)
				state, err := session.MarshalState()
				ce(err)
				store, err := openStore(ctx)
				ce(err)
				defer store.Close()
				preset, err := store.Save(ctx, presets.Preset{
					Name:   name,
					Source: session.Source(),
					State:  state,
				})
				ce(err)
				fmt.Printf("%s %s\n", preset.ID, preset.Name)
			})
		}).Desc("save a program file as a preset"),

		"show": cmds.Func(func(name string) {
			actions = append(actions, func(
				openStore presets.OpenStore,
				newSession beathost.NewSession,
			) {
				ctx := context.Background()
				store, err := openStore(ctx)
				ce(err)
				defer store.Close()
				preset, err := store.Load(ctx, name)
				ce(err)
				session := newSession()
				if len(preset.State) > 0 {
					ce(session.UnmarshalState(preset.State))
				} else if err := session.Compile(preset.Source); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				diag := session.Diagnostics()
				fmt.Println(diag.Source)
				if diag.CompileError != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", diag.CompileError)
				}
				fmt.Print(diag.Disassembly)
			})
		}).Desc("print the source and instructions of a preset"),

		"list": cmds.Func(func() {
			actions = append(actions, func(
				openStore presets.OpenStore,
			) {
				ctx := context.Background()
				store, err := openStore(ctx)
				ce(err)
				defer store.Close()
				list, err := store.List(ctx)
				ce(err)
				for _, preset := range list {
					fmt.Printf("%s\t%s\t%s\n",
						preset.Name,
						preset.Updated.Format("2006-01-02 15:04:05"),
						preset.Source,
					)
				}
			})
		}).Desc("list presets"),

		"rm": cmds.Func(func(name string) {
			actions = append(actions, func(
				openStore presets.OpenStore,
			) {
				ctx := context.Background()
				store, err := openStore(ctx)
				ce(err)
				defer store.Close()
				ce(store.Delete(ctx, name))
			})
		}).Desc("delete a preset"),
	}).Desc("manage presets: save NAME FILE, show NAME, list, rm NAME"))
}
