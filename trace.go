package features

import "encoding/json"

// Trace captures provenance information for a single lookup across the tiers
// consulted before it resolved (or missed).
type Trace struct {
	Key   string  `json:"key"`
	Kind  string  `json:"kind"`
	Tiers []Probe `json:"tiers"`
}

// Probe details how one tier responded to a traced lookup. Present reports
// whether the tier held any value for the key; Matched whether that value had
// the requested kind.
type Probe struct {
	Tier    string `json:"tier"`
	Present bool   `json:"present"`
	Matched bool   `json:"matched"`
	Value   any    `json:"value,omitempty"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
