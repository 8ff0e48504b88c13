package activity_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-features/pkg/activity"
)

func TestHooksNotifyFansOut(t *testing.T) {
	first := &activity.CaptureHook{}
	second := &activity.CaptureHook{}
	hooks := activity.Hooks{first, nil, second}

	event := activity.Event{
		Verb:       activity.VerbOverrideSet,
		ObjectType: "flag.override",
		ObjectID:   "darkMode",
	}
	if err := hooks.Notify(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("expected both hooks notified, got %d and %d", len(first.Events), len(second.Events))
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	failing := &activity.CaptureHook{Err: errors.New("sink unavailable")}
	healthy := &activity.CaptureHook{}
	hooks := activity.Hooks{failing, healthy}

	err := hooks.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbOverrideSet,
		ObjectType: "flag.override",
		ObjectID:   "darkMode",
	})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if !strings.Contains(err.Error(), "sink unavailable") {
		t.Fatalf("expected hook error to surface, got %v", err)
	}
	if len(healthy.Events) != 1 {
		t.Fatalf("expected healthy hook to still be notified")
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	hook := &activity.CaptureHook{}
	hooks := activity.Hooks{hook}

	incomplete := []activity.Event{
		{ObjectType: "flag.override", ObjectID: "darkMode"},
		{Verb: activity.VerbOverrideSet, ObjectID: "darkMode"},
		{Verb: activity.VerbOverrideSet, ObjectType: "flag.override"},
		{Verb: "   ", ObjectType: "flag.override", ObjectID: "darkMode"},
	}
	for _, event := range incomplete {
		if err := hooks.Notify(context.Background(), event); err != nil {
			t.Fatalf("expected incomplete event to be dropped silently, got %v", err)
		}
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(hook.Events))
	}
}

func TestNormalizeEvent(t *testing.T) {
	metadata := map[string]any{"old_value": "A"}
	event := activity.NormalizeEvent(activity.Event{
		Verb:       "  flag.override.set ",
		ActorID:    " debug-ui ",
		ObjectType: " flag.override ",
		ObjectID:   " darkMode ",
		Metadata:   metadata,
	})

	if event.Verb != "flag.override.set" {
		t.Fatalf("expected trimmed verb, got %q", event.Verb)
	}
	if event.ActorID != "debug-ui" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected timestamp to be backfilled")
	}

	metadata["old_value"] = "mutated"
	if event.Metadata["old_value"] != "A" {
		t.Fatalf("expected metadata to be detached from the input")
	}
}

func TestNormalizeEventKeepsExplicitTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := activity.NormalizeEvent(activity.Event{OccurredAt: at})
	if !event.OccurredAt.Equal(at) {
		t.Fatalf("expected timestamp %v to survive, got %v", at, event.OccurredAt)
	}
}

func TestEmitterAppliesDefaultChannel(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true})

	err := emitter.Emit(context.Background(), activity.Event{
		Verb:       activity.VerbOverrideSet,
		ObjectType: "flag.override",
		ObjectID:   "darkMode",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(hook.Events) != 1 {
		t.Fatalf("expected one delivery, got %d", len(hook.Events))
	}
	if got := hook.Events[0].Channel; got != "features" {
		t.Fatalf("expected default channel, got %q", got)
	}
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true, Channel: "audit"})

	event := activity.Event{
		Verb:       activity.VerbOverrideSet,
		ObjectType: "flag.override",
		ObjectID:   "darkMode",
		Channel:    "custom",
	}
	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := hook.Events[0].Channel; got != "custom" {
		t.Fatalf("expected explicit channel to win, got %q", got)
	}
}

func TestEmitterDisabled(t *testing.T) {
	hook := &activity.CaptureHook{}

	cases := map[string]*activity.Emitter{
		"nil emitter":     nil,
		"config disabled": activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: false}),
		"no hooks":        activity.NewEmitter(nil, activity.Config{Enabled: true}),
		"only nil hooks":  activity.NewEmitter(activity.Hooks{nil}, activity.Config{Enabled: true}),
	}
	for name, emitter := range cases {
		t.Run(name, func(t *testing.T) {
			if emitter.Enabled() {
				t.Fatalf("expected emitter to be disabled")
			}
			err := emitter.Emit(context.Background(), activity.Event{
				Verb:       activity.VerbOverrideSet,
				ObjectType: "flag.override",
				ObjectID:   "darkMode",
			})
			if err != nil {
				t.Fatalf("expected disabled emit to be a no-op, got %v", err)
			}
		})
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(hook.Events))
	}
}

func TestBuildOverrideSetEvent(t *testing.T) {
	event := activity.BuildOverrideSetEvent(activity.OverrideEventInput{
		ActorID:  "debug-ui",
		Key:      "darkMode",
		OldValue: false,
		NewValue: true,
	})

	if event.Verb != activity.VerbOverrideSet {
		t.Fatalf("expected verb %q, got %q", activity.VerbOverrideSet, event.Verb)
	}
	if event.ObjectType != "flag.override" {
		t.Fatalf("expected object type flag.override, got %q", event.ObjectType)
	}
	if event.ObjectID != "darkMode" {
		t.Fatalf("expected object id darkMode, got %q", event.ObjectID)
	}
	if event.Metadata["old_value"] != false || event.Metadata["new_value"] != true {
		t.Fatalf("expected value transition in metadata, got %v", event.Metadata)
	}
}

func TestBuildOverrideSetEventOmitsNilValues(t *testing.T) {
	event := activity.BuildOverrideSetEvent(activity.OverrideEventInput{
		Key:      "darkMode",
		NewValue: true,
	})
	if _, ok := event.Metadata["old_value"]; ok {
		t.Fatalf("expected no old_value for a fresh override, got %v", event.Metadata)
	}
	if event.Metadata["new_value"] != true {
		t.Fatalf("expected new_value, got %v", event.Metadata)
	}
}

func TestBuildOverridesClearedEvent(t *testing.T) {
	event := activity.BuildOverridesClearedEvent(activity.OverrideEventInput{
		ActorID: "debug-ui",
		Key:     "ignored",
	})

	if event.Verb != activity.VerbOverrideCleared {
		t.Fatalf("expected verb %q, got %q", activity.VerbOverrideCleared, event.Verb)
	}
	if event.ObjectID != "*" {
		t.Fatalf("expected wildcard object id, got %q", event.ObjectID)
	}
}

func TestCaptureHookCounts(t *testing.T) {
	hook := &activity.CaptureHook{}
	hooks := activity.Hooks{hook}

	events := []activity.Event{
		activity.BuildOverrideSetEvent(activity.OverrideEventInput{Key: "darkMode", NewValue: true}),
		activity.BuildOverrideSetEvent(activity.OverrideEventInput{Key: "promoCode", NewValue: "SALE25"}),
		activity.BuildOverridesClearedEvent(activity.OverrideEventInput{}),
	}
	for _, event := range events {
		if err := hooks.Notify(context.Background(), event); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	if got := hook.SetCount(); got != 2 {
		t.Fatalf("expected 2 set events, got %d", got)
	}
	if got := hook.ClearedCount(); got != 1 {
		t.Fatalf("expected 1 cleared event, got %d", got)
	}
	last, ok := hook.LastForFlag("promoCode")
	if !ok {
		t.Fatalf("expected a captured event for promoCode")
	}
	if last.Metadata["new_value"] != "SALE25" {
		t.Fatalf("expected new_value metadata, got %v", last.Metadata)
	}
	if _, ok := hook.LastForFlag("unknown"); ok {
		t.Fatalf("expected no event for an untouched flag")
	}
}

func TestHookFuncNil(t *testing.T) {
	var fn activity.HookFunc
	if err := fn.Notify(context.Background(), activity.Event{}); err != nil {
		t.Fatalf("expected nil HookFunc to be a no-op, got %v", err)
	}
}
