package merge

import (
	"strings"

	"github.com/arthur-debert/projsync/pkg/jsondoc"
)

// Position says where a script fragment goes relative to the existing command.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
)

// DefaultSeparator joins composed script fragments.
const DefaultSeparator = " && "

// DeepMergeObject merges desired into a copy of existing. Keys missing from
// existing are inserted at the end, objects present on both sides are merged
// recursively, arrays present on both sides are unioned and anything else is
// overwritten by the desired value.
func DeepMergeObject(existing, desired *jsondoc.Object) *jsondoc.Object {
	result := existing.Clone()
	for _, key := range desired.Keys() {
		desiredVal, _ := desired.Get(key)
		existingVal, ok := result.Get(key)
		if !ok {
			result.Set(key, jsondoc.Clone(desiredVal))
			continue
		}

		if desiredObj, isObj := desiredVal.(*jsondoc.Object); isObj {
			if existingObj, isObj := existingVal.(*jsondoc.Object); isObj {
				result.Set(key, DeepMergeObject(existingObj, desiredObj))
				continue
			}
		}

		if desiredArr, isArr := desiredVal.([]interface{}); isArr {
			if existingArr, isArr := existingVal.([]interface{}); isArr {
				result.Set(key, UnionAppendUnique(existingArr, desiredArr))
				continue
			}
		}

		// Conflicting scalar or type mismatch: desired wins.
		result.Set(key, jsondoc.Clone(desiredVal))
	}
	return result
}

// UnionAppendUnique appends every entry not already present, keeping the
// existing order and the relative order of new entries. Duplicates inside
// entries are collapsed as well.
func UnionAppendUnique(existing, entries []interface{}) []interface{} {
	result := make([]interface{}, 0, len(existing)+len(entries))
	for _, item := range existing {
		result = append(result, jsondoc.Clone(item))
	}
	for _, entry := range entries {
		if containsValue(result, entry) {
			continue
		}
		result = append(result, jsondoc.Clone(entry))
	}
	return result
}

// UnionStrings is UnionAppendUnique for plain string lists.
func UnionStrings(existing, entries []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(entries))
	result := make([]string, 0, len(existing)+len(entries))
	for _, s := range existing {
		result = append(result, s)
		seen[s] = struct{}{}
	}
	for _, s := range entries {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

// ScriptCompose adds fragment to existing at position. If existing already
// contains fragment it is returned unchanged.
func ScriptCompose(existing, fragment string, position Position, separator string) string {
	if fragment == "" || strings.Contains(existing, fragment) {
		return existing
	}
	if existing == "" {
		return fragment
	}
	if position == After {
		return existing + separator + fragment
	}
	return fragment + separator + existing
}

func containsValue(list []interface{}, v interface{}) bool {
	for _, item := range list {
		if jsondoc.Equal(item, v) {
			return true
		}
	}
	return false
}
