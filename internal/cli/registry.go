package cli

import (
	"github.com/roach88/symhash/internal/config"
	"github.com/roach88/symhash/internal/pass"
	"github.com/roach88/symhash/internal/pass/md5name"
)

// builtinPlugins returns every plugin the CLI ships, configured from cfg.
func builtinPlugins(cfg config.Config) []pass.Plugin {
	return []pass.Plugin{
		md5name.Plugin(cfg.PassConfig()),
	}
}

// newRegistry loads the built-in plugins, announcing each to rec.
func newRegistry(cfg config.Config, rec pass.Recorder) (*pass.Registry, error) {
	reg := pass.NewRegistry()
	for _, p := range builtinPlugins(cfg) {
		if err := reg.Load(p, rec); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
