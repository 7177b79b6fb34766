package md5name

import "github.com/roach88/symhash/internal/pass"

// PluginName is the display name announced when the plugin loads.
const PluginName = "MD5FunctionNamePass"

// Plugin registers the pass under Name with the given exclusions.
func Plugin(cfg Config) pass.Plugin {
	return pass.Plugin{
		Name:    PluginName,
		Version: "1",
		Register: func(r *pass.Registry) error {
			return r.Register(Name, func(rec pass.Recorder) pass.FunctionPass {
				return New(cfg, rec)
			})
		},
	}
}
