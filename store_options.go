package persist

import "context"

// WithAutoInit controls whether construction triggers Init immediately.
// Enabled by default; disable it when the caller wants to drive the load
// itself and observe its error synchronously.
func WithAutoInit(enabled bool) StoreOption {
	return func(cfg *storeConfig) {
		cfg.autoInit = enabled
	}
}

// WithInitContext sets the context used for the auto-triggered load.
func WithInitContext(ctx context.Context) StoreOption {
	return func(cfg *storeConfig) {
		if ctx != nil {
			cfg.initCtx = ctx
		}
	}
}

// WithStoreLogger attaches a logger for load, write-through, and filter
// events.
func WithStoreLogger(logger StoreLogger) StoreOption {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopStoreLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithFilterEvaluator sets the engine used by WatchFilter. Defaults to the
// CEL engine when unset.
func WithFilterEvaluator(evaluator FilterEvaluator) StoreOption {
	return func(cfg *storeConfig) {
		cfg.filterEval = evaluator
	}
}

// WithProgramCache registers a compiled-predicate cache shared by the
// default filter engine.
func WithProgramCache(cache ProgramCache) StoreOption {
	return func(cfg *storeConfig) {
		cfg.programCache = cache
	}
}

func applyStoreOptions(opts []StoreOption) storeConfig {
	cfg := storeConfig{
		autoInit: true,
		initCtx:  context.Background(),
		logger:   noopStoreLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// InitOption configures a single Init call.
type InitOption func(*initConfig)

type initConfig struct {
	force bool
}

// Force requests a reload even when the store is already initialized. The
// loaded value is deep-merged over the current in-memory value, so local
// keys the backing store does not carry survive the reload.
func Force() InitOption {
	return func(cfg *initConfig) {
		cfg.force = true
	}
}

func applyInitOptions(opts []InitOption) initConfig {
	var cfg initConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
