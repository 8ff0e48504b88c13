package features

import (
	"context"
	"time"

	"github.com/goliatone/go-features/pkg/activity"
)

// Manager resolves feature values through the three ordered tiers: local
// override store, remote snapshot, manifest defaults. A lookup takes the
// first tier holding a value of exactly the requested kind; a kind mismatch
// at a tier never fails the lookup, it falls through to the next tier.
//
// Manager satisfies Getter, so it plugs directly into the capability contract
// emitted by the code generator.
type Manager struct {
	manifest *Manifest
	cfg      managerConfig
}

// NewManager constructs a Manager over the manifest defaults. The manifest may
// be nil, in which case the default tier is empty.
func NewManager(manifest *Manifest, opts ...Option) *Manager {
	return &Manager{
		manifest: manifest,
		cfg:      applyOptions(opts),
	}
}

// Resolve walks the tiers in strict order and returns the first value of
// exactly the requested kind, along with the tier that supplied it. A miss
// reports TierNone and ok=false; misses are the designed fallback, not errors.
func (m *Manager) Resolve(key string, kind Kind) (Value, Tier, bool) {
	start := time.Now()
	value, tier, ok := m.resolve(key, kind, nil)
	m.logger().LogResolve(ResolveLogEvent{
		Key:      key,
		Kind:     kind,
		Tier:     tier,
		Duration: time.Since(start),
		Found:    ok,
	})
	return value, tier, ok
}

// ResolveWithTrace behaves like Resolve while recording how each consulted
// tier responded.
func (m *Manager) ResolveWithTrace(key string, kind Kind) (Value, Trace, bool) {
	trace := &Trace{Key: key, Kind: kind.String()}
	start := time.Now()
	value, tier, ok := m.resolve(key, kind, trace)
	m.logger().LogResolve(ResolveLogEvent{
		Key:      key,
		Kind:     kind,
		Tier:     tier,
		Duration: time.Since(start),
		Found:    ok,
	})
	return value, *trace, ok
}

func (m *Manager) resolve(key string, kind Kind, trace *Trace) (Value, Tier, bool) {
	if value, ok := m.probeLocal(key, kind, trace); ok {
		return value, TierLocal, true
	}
	if value, ok := m.probeRemote(key, kind, trace); ok {
		return value, TierRemote, true
	}
	if value, ok := m.probeDefault(key, kind, trace); ok {
		return value, TierDefault, true
	}
	return Value{}, TierNone, false
}

func (m *Manager) probeLocal(key string, kind Kind, trace *Trace) (Value, bool) {
	if m.cfg.local == nil {
		return Value{}, false
	}
	raw, present := m.cfg.local.Get(key)
	return m.probe(TierLocal, key, kind, raw, present, trace)
}

func (m *Manager) probeRemote(key string, kind Kind, trace *Trace) (Value, bool) {
	if m.cfg.remote == nil {
		return Value{}, false
	}
	raw, present := m.cfg.remote.Lookup(key)
	if present {
		if conditional, ok := raw.(Conditional); ok {
			if !m.ruleSatisfied(key, conditional.When) {
				recordProbe(trace, TierRemote, true, false, nil)
				return Value{}, false
			}
			raw = conditional.Value
		}
	}
	return m.probe(TierRemote, key, kind, raw, present, trace)
}

func (m *Manager) probeDefault(key string, kind Kind, trace *Trace) (Value, bool) {
	entry, present := m.manifest.Lookup(key)
	if !present {
		recordProbe(trace, TierDefault, false, false, nil)
		return Value{}, false
	}
	return m.probe(TierDefault, key, kind, entry.Value, true, trace)
}

// probe classifies a raw tier payload and applies the exact-kind rule.
func (m *Manager) probe(tier Tier, key string, kind Kind, raw any, present bool, trace *Trace) (Value, bool) {
	if !present {
		recordProbe(trace, tier, false, false, nil)
		return Value{}, false
	}
	value, ok := ValueOf(raw)
	if !ok || value.Kind() != kind {
		recordProbe(trace, tier, true, false, value.Interface())
		return Value{}, false
	}
	recordProbe(trace, tier, true, true, value.Interface())
	return value, true
}

// ruleSatisfied evaluates a Conditional guard. Missing evaluator, evaluation
// failure, or a non-truthy result all mean the entry does not satisfy the
// tier; failures surface only through the resolve logger.
func (m *Manager) ruleSatisfied(key, expr string) bool {
	if expr == "" {
		return true
	}
	if m.cfg.evaluator == nil {
		return false
	}
	result, err := m.cfg.evaluator.Evaluate(RuleContext{Key: key}, expr)
	if err != nil {
		m.logger().LogResolve(ResolveLogEvent{Key: key, Tier: TierRemote, Err: wrapEvaluationError("", expr, key, err)})
		return false
	}
	return truthy(result)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case int64:
		return v != 0
	case int:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func recordProbe(trace *Trace, tier Tier, present, matched bool, value any) {
	if trace == nil {
		return
	}
	probe := Probe{Tier: tier.String(), Present: present, Matched: matched}
	if matched {
		probe.Value = value
	}
	trace.Tiers = append(trace.Tiers, probe)
}

// GetString resolves key as a string, returning "" on miss.
func (m *Manager) GetString(key string) string {
	value, _, ok := m.Resolve(key, KindString)
	if !ok {
		return ""
	}
	s, _ := value.AsString()
	return s
}

// GetBool resolves key as a boolean, returning false on miss.
func (m *Manager) GetBool(key string) bool {
	value, _, ok := m.Resolve(key, KindBool)
	if !ok {
		return false
	}
	b, _ := value.AsBool()
	return b
}

// GetInt resolves key as an integer, returning 0 on miss.
func (m *Manager) GetInt(key string) int64 {
	value, _, ok := m.Resolve(key, KindInt)
	if !ok {
		return 0
	}
	i, _ := value.AsInt()
	return i
}

// GetDouble resolves key as a floating-point, returning 0.0 on miss.
func (m *Manager) GetDouble(key string) float64 {
	value, _, ok := m.Resolve(key, KindDouble)
	if !ok {
		return 0
	}
	f, _ := value.AsDouble()
	return f
}

// SetLocalOverride writes value into the local tier unconditionally, replacing
// any prior override for key regardless of kind. Without a local store the
// write is dropped.
func (m *Manager) SetLocalOverride(key string, value any) {
	if m.cfg.local == nil {
		return
	}
	entries := m.cfg.local.GetAll()
	old := entries[key]
	entries[key] = value
	m.cfg.local.SetAll(entries)

	m.emit(activity.BuildOverrideSetEvent(activity.OverrideEventInput{
		ActorID:  m.cfg.actorID,
		Key:      key,
		OldValue: old,
		NewValue: value,
	}))
}

// HasLocalOverrides reports whether at least one override exists.
func (m *Manager) HasLocalOverrides() bool {
	if m.cfg.local == nil {
		return false
	}
	return len(m.cfg.local.GetAll()) > 0
}

// ClearLocalOverrides removes every override from the local tier.
func (m *Manager) ClearLocalOverrides() {
	if m.cfg.local == nil {
		return
	}
	m.cfg.local.Clear()

	m.emit(activity.BuildOverridesClearedEvent(activity.OverrideEventInput{
		ActorID: m.cfg.actorID,
	}))
}

func (m *Manager) emit(event activity.Event) {
	if !m.cfg.emitter.Enabled() {
		return
	}
	if err := m.cfg.emitter.Emit(context.Background(), event); err != nil {
		m.logger().LogResolve(ResolveLogEvent{Key: event.ObjectID, Err: err})
	}
}

func (m *Manager) logger() ResolveLogger {
	if m.cfg.logger != nil {
		return m.cfg.logger
	}
	return noopResolveLogger{}
}

var _ Getter = (*Manager)(nil)
