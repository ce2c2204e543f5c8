package beatconfigs

import (
	"github.com/reusee/beat/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
