package cmds

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

// WriteUsage lists commands sorted by name. Aliases are shown with the command they belong to.
func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, indent int) {
	names := make(map[*Command][]string)
	var order []*Command
	for name, command := range commands {
		if command == nil {
			continue
		}
		if _, ok := names[command]; !ok {
			order = append(order, command)
		}
		names[command] = append(names[command], name)
	}
	for _, command := range order {
		slices.SortFunc(names[command], func(a, b string) int {
			// the shortest name goes first
			if len(a) != len(b) {
				return len(a) - len(b)
			}
			return strings.Compare(a, b)
		})
	}
	slices.SortFunc(order, func(a, b *Command) int {
		return strings.Compare(names[a][0], names[b][0])
	})

	prefix := strings.Repeat("  ", indent)
	for _, command := range order {
		line := prefix + strings.Join(names[command], ", ")
		if args := argNames(command); args != "" {
			line += " " + args
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, indent+1)
		}
	}
}

func argNames(command *Command) string {
	if !command.Func.IsValid() {
		return ""
	}
	var parts []string
	t := command.Func.Type()
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Kind() == reflect.Pointer {
			parts = append(parts, "["+in.Elem().Kind().String()+"]")
			continue
		}
		parts = append(parts, "<"+in.Kind().String()+">")
	}
	return strings.Join(parts, " ")
}
