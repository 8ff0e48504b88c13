//go:build !js_eval

package features

// NewJSEvaluator returns nil without the js_eval build tag: goja stays out of
// default builds. A Manager with a nil evaluator treats every non-empty
// Conditional guard as unsatisfied, so remote entries gated on JS rules fall
// through to the default tier.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}
