package main

import (
	"fmt"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/beatlang"
	"github.com/reusee/beat/beatvm"
	"github.com/reusee/beat/cmds"
)

func init() {
	cmds.Define("disasm", cmds.Func(func(file string) {
		actions = append(actions, func(
			memSize beathost.UserMemorySize,
		) {
			source, err := readSource(file)
			ce(err)
			ops, err := beatlang.CompileOps(source, int(memSize))
			ce(err)
			fmt.Print(beatvm.Disassemble(ops))
		})
	}).Desc("print the compiled instructions of a program file"))
}
