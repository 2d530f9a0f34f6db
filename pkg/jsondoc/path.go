package jsondoc

import "strings"

// Path addresses a value inside nested objects, one key per segment.
type Path []string

// ParsePath splits a dotted path. A backslash escapes the next character, so
// "settings.editor\.tabSize" has two segments.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	var (
		out     Path
		current strings.Builder
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			out = append(out, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(out, current.String())
}

// String renders the path back into dotted form.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		seg = strings.ReplaceAll(seg, `\`, `\\`)
		parts[i] = strings.ReplaceAll(seg, ".", `\.`)
	}
	return strings.Join(parts, ".")
}

// Lookup returns the value at path. The empty path addresses obj itself.
func Lookup(obj *Object, path Path) (interface{}, bool) {
	if len(path) == 0 {
		return obj, obj != nil
	}
	current := obj
	for i, seg := range path {
		v, ok := current.Get(seg)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Object)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// Assign stores value at path, creating intermediate objects. Intermediate
// values that are not objects are replaced. path must not be empty.
func Assign(obj *Object, path Path, value interface{}) {
	current := obj
	for _, seg := range path[:len(path)-1] {
		v, ok := current.Get(seg)
		next, isObj := v.(*Object)
		if !ok || !isObj {
			next = NewObject()
			current.Set(seg, next)
		}
		current = next
	}
	current.Set(path[len(path)-1], value)
}
