package features

import (
	"time"

	"github.com/goliatone/go-features/pkg/activity"
	"github.com/goliatone/go-features/pkg/store"
)

// Tier identifies one of the ordered sources consulted during resolution.
// Lower values are consulted first and win on an exact kind match.
type Tier int

const (
	// TierNone reports that no tier satisfied a lookup.
	TierNone Tier = iota
	// TierLocal is the override store, the strongest tier.
	TierLocal
	// TierRemote is the dynamic-config snapshot.
	TierRemote
	// TierDefault is the static manifest, the weakest tier.
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierLocal:
		return "local"
	case TierRemote:
		return "remote"
	case TierDefault:
		return "default"
	default:
		return "none"
	}
}

// Getter is the capability contract a resolver backend satisfies: one typed
// accessor per supported kind. Accessors return the documented zero value
// ("", false, 0, 0.0) when the key does not resolve under the requested kind;
// they never return errors.
type Getter interface {
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int64
	GetDouble(key string) float64
}

// Source is the remote dynamic-config collaborator: a synchronous snapshot
// queried by key. Implementations must report absence rather than fail.
type Source interface {
	Lookup(key string) (any, bool)
}

// SnapshotMap is a Source backed by a plain map.
type SnapshotMap map[string]any

// Lookup implements Source.
func (s SnapshotMap) Lookup(key string) (any, bool) {
	value, ok := s[key]
	return value, ok
}

// Conditional gates a remote value behind a rule expression. The value
// participates in the remote tier only when When evaluates truthy under the
// manager's configured evaluator.
type Conditional struct {
	When  string
	Value any
}

// RuleContext carries inputs needed when evaluating a rule expression.
type RuleContext struct {
	Key      string
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// Evaluator executes rule expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a Manager.
type Option func(*managerConfig)

type managerConfig struct {
	local     store.Store
	remote    Source
	evaluator Evaluator
	logger    ResolveLogger
	emitter   *activity.Emitter
	actorID   string
}

func applyOptions(opts []Option) managerConfig {
	cfg := managerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLocalStore wires the override store adapter. Without one the local tier
// is empty and mutations are dropped.
func WithLocalStore(s store.Store) Option {
	return func(cfg *managerConfig) {
		cfg.local = s
	}
}

// WithRemoteSource wires the remote snapshot collaborator.
func WithRemoteSource(s Source) Option {
	return func(cfg *managerConfig) {
		cfg.remote = s
	}
}

// WithEvaluator configures the evaluator used for Conditional remote entries.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *managerConfig) {
		cfg.evaluator = e
	}
}

// WithActivityEmitter attaches an emitter that receives override mutation
// events. Emission failures are logged, never escalated.
func WithActivityEmitter(emitter *activity.Emitter) Option {
	return func(cfg *managerConfig) {
		cfg.emitter = emitter
	}
}

// WithActor sets the actor identifier recorded on mutation activity events.
func WithActor(id string) Option {
	return func(cfg *managerConfig) {
		cfg.actorID = id
	}
}
