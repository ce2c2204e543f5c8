package beatvm

import (
	"fmt"
	"strings"
)

func Disassemble(ops []Op) string {
	var b strings.Builder
	for i, op := range ops {
		fmt.Fprintf(&b, "%04d %s\n", i, op)
	}
	return b.String()
}
