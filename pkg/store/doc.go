// Package store defines the adapter boundary between the feature resolver and
// whatever key-value medium the host environment persists overrides in.
//
// Responsibilities:
//   - Store only reads/writes the override mapping; it owns no resolution
//     policy.
//   - Adapters are synchronous and never fail outward: when the underlying
//     medium is unreachable they report absence (and log through slog), so
//     the resolver's never-crash contract holds.
//   - SetAll and Clear are serialized internally so a concurrent Get never
//     observes a partially written mapping.
//
// Three adapters ship with the module: Memory for tests and examples, File
// for a JSON settings document on disk, and SQLite for hosts that already
// carry a database file.
package store
