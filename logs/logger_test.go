package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("compiled", "ops", 42)
		logger.With("session", "a").Info("swapped")
	})
	if !strings.Contains(buf.String(), "ops=42") {
		t.Fatalf("got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "session=a") {
		t.Fatalf("got %s", buf.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("compile.error-code"); got != "COMPILE_ERROR_CODE" {
		t.Fatalf("got %s", got)
	}
}
