// Package snapshot defines the local record of a user's remote account state
// and the reconciliation engine that merges a freshly collected remote view
// against the previous snapshot.
//
// The merge is deterministic for fixed inputs up to set ordering;
// Canonicalize imposes a stable sort so persisted snapshots diff cleanly
// across runs. Referential consistency between accounts and the id sets
// (following, list items, payment accounts) is a read-time concern for
// consumers, not a merge-time invariant.
package snapshot
