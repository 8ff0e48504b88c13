package features

// jsEvaluatorConfig is shared between the goja build and the stub so JS
// options can be constructed regardless of the js_eval tag.
type jsEvaluatorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSEvaluatorOption configures the JavaScript rule engine.
type JSEvaluatorOption func(*jsEvaluatorConfig)

// JSWithProgramCache caches compiled rule programs across flag lookups, so a
// hot Conditional guard is not recompiled per resolution.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry exposes registry functions to rule expressions. The
// registry is cloned; later registrations do not leak into the evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSEvaluatorOptions(opts []JSEvaluatorOption) jsEvaluatorConfig {
	cfg := jsEvaluatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
