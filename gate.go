package dappkitty

// ShouldActivate reports whether the overlay may run for cfg at origin.
// It keeps no state; every activation attempt asks again.
//
// The production guard only applies when cfg.ProductionURL is set. With an
// empty ProductionURL any origin passes, including the empty origin of a
// host without a location, and only the env and level checks remain.
func ShouldActivate(cfg *Config, origin string) bool {
	if cfg == nil {
		return false
	}
	if cfg.ProductionURL != "" && origin == cfg.ProductionURL {
		return false
	}
	if cfg.Env != EnvDev && cfg.Env != EnvLocal {
		return false
	}
	return cfg.LogLevel != LevelOff
}
