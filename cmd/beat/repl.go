package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/cmds"
)

func init() {
	cmds.Define("repl", cmds.Func(func() {
		actions = append(actions, func(
			newSession beathost.NewSession,
		) {
			runREPL(newSession())
		})
	}).Desc("compile and run one frame per line, :d disassembles the last program"))
}

func runREPL(session *beathost.Session) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".beat_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":d":
			fmt.Print(session.Diagnostics().Disassembly)
			continue
		}

		if err := session.Compile(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		frames := make([]beathost.Frame, 1)
		session.Process(frames)
		diag := session.Diagnostics()
		if diag.RuntimeError != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", diag.RuntimeError)
		}
		fmt.Println(formatFrame(frames[0]))
	}
}

func formatFrame(frame beathost.Frame) string {
	parts := make([]string, len(frame))
	for i, v := range frame {
		parts[i] = fmt.Sprintf("%d", v)
		if int64(v) < 0 {
			parts[i] += fmt.Sprintf(" (%d)", int64(v))
		}
	}
	return strings.Join(parts, " ")
}
