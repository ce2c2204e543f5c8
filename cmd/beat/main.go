package main

import (
	"os"

	"github.com/reusee/beat/cmds"
	"github.com/reusee/beat/modes"
	"github.com/reusee/dscope"
)

// functions called with the scope after the command line is parsed, in order
var actions []any

func main() {
	cmds.Execute(os.Args[1:])
	if len(actions) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		return
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	for _, action := range actions {
		scope.Call(action)
	}
}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}
