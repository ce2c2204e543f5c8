package presets

import (
	"context"

	"github.com/reusee/beat/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type OpenStore func(ctx context.Context) (*Store, error)

func (Module) OpenStore(
	path Path,
	logger logs.Logger,
) OpenStore {
	return func(ctx context.Context) (*Store, error) {
		logger.DebugContext(ctx, "open presets",
			"path", path,
		)
		return Open(ctx, string(path))
	}
}
