package persist

// JSFilterOption configures the goja filter engine. Options are shared by
// the js_eval build and its stub so call sites compile either way.
type JSFilterOption func(*jsFilterConfig)

type jsFilterConfig struct {
	cache ProgramCache
}

// JSFilterWithCache wires a ProgramCache into the goja engine.
func JSFilterWithCache(cache ProgramCache) JSFilterOption {
	return func(cfg *jsFilterConfig) {
		cfg.cache = cache
	}
}

func applyJSFilterOptions(opts []JSFilterOption) jsFilterConfig {
	var cfg jsFilterConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// JSFilterAvailable reports whether the binary was built with the js_eval
// tag.
func JSFilterAvailable() bool {
	return jsFilterAvailable()
}
