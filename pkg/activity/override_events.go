package activity

import "time"

// Mutation verbs emitted by the resolver.
const (
	VerbOverrideSet     = "flag.override.set"
	VerbOverrideCleared = "flag.override.cleared"
)

// OverrideEventInput describes the common fields for override mutation events.
type OverrideEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Key        string
	Channel    string
	OldValue   any
	NewValue   any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildOverrideSetEvent constructs a normalized event for a single override write.
func BuildOverrideSetEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideSet, input)
}

// BuildOverridesClearedEvent constructs a normalized event for a wholesale clear.
// Input.Key is ignored; the event targets the whole override mapping.
func BuildOverridesClearedEvent(input OverrideEventInput) Event {
	input.Key = "*"
	return buildOverrideEvent(VerbOverrideCleared, input)
}

func buildOverrideEvent(verb string, input OverrideEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	return NormalizeEvent(Event{
		Verb:       verb,
		ActorID:    input.ActorID,
		UserID:     input.UserID,
		TenantID:   input.TenantID,
		ObjectType: "flag.override",
		ObjectID:   input.Key,
		Channel:    input.Channel,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	})
}

func ensureMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return metadata
}
