package store

// Store is the override persistence adapter consulted by the resolver's local
// tier. Values are dynamically typed; classification happens in the resolver.
//
// Implementations must treat an unreachable medium as absence rather than
// returning errors, and must serialize SetAll/Clear against readers.
type Store interface {
	// Get returns the override for key, reporting absence with ok=false.
	Get(key string) (any, bool)
	// GetAll returns a detached copy of the full override mapping.
	GetAll() map[string]any
	// SetAll replaces the persisted mapping wholesale.
	SetAll(entries map[string]any)
	// Clear removes every override.
	Clear()
}

func cloneEntries(entries map[string]any) map[string]any {
	out := make(map[string]any, len(entries))
	for k, v := range entries {
		out[k] = v
	}
	return out
}
