package logs

import (
	"io"
	"os"
)

type Writer io.Writer

// Writer is where terminal logs go. Standard output is reserved for rendered data.
func (Module) Writer() Writer {
	return os.Stderr
}
