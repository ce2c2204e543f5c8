package beatconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/beat/configs"
	"github.com/reusee/beat/logs"
)

//go:embed schema.cue
var Schema string

var filenames = []string{
	"beat.cue",
	".beat.cue",
}

// ConfigPaths lists existing config files, the working directory first, then the user config dir, then /etc.
func ConfigPaths() (paths []string) {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := ConfigPaths()
	if len(paths) > 0 {
		logger.Info("config files",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, Schema)
}
