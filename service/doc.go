// Package service provides derived, non-solved quantities consumed when
// building equations: values that exist alongside the Newton iteration but
// are never part of the solution vector.
//
// Variants:
//
//   - Const — computed exactly once, after parameters are known and before
//     variables are initialized; constant for the rest of the case.
//   - ExtService — pulled once from another owning entity through the Getter
//     surface, by external indices.
//   - Reduce — applies a reduction function to each contiguous group of a
//     ragged Grouping; the result is cached lazily on first read and must be
//     explicitly invalidated when any contributing input changes.
//   - Repeat — broadcasts per-group values back across each group's members;
//     must share its Grouping with the Reduce partner or lengths mismatch.
//   - Random — recomputed on every read, never cached.
//
// The ragged partition itself is a Grouping: a compact arena of group-start
// offsets plus a flat member array, giving O(1) access to any group's extent.
// Empty groups are allowed.
package service
