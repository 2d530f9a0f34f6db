// Package merge combines an existing configuration value with a desired one.
//
// All functions are pure: inputs are never mutated and results share no
// structure with them. Three strategies cover every mutation projsync makes:
//
//   - DeepMergeObject: recursive object merge. Conflicting scalars are
//     overwritten by the desired value (last writer wins, the one place
//     information is lost). Arrays on both sides are unioned.
//   - UnionAppendUnique: list membership. New entries are appended in order,
//     entries already present (exact structural match) are skipped.
//   - ScriptCompose: ordered composition of shell command strings, idempotent
//     by substring.
//
// Membership and equality are exact. Two spellings of an equivalent command
// are distinct entries and both may end up in a list.
package merge
