// Package packages collects the npm packages a run wants and hands them to
// the package manager in a single install call.
package packages

import "strings"

// Request is an ordered set of package names. The zero value is ready to use.
type Request struct {
	names []string
	seen  map[string]struct{}
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{}
}

// Add inserts names that are not already present, keeping first-seen order.
// Blank names are ignored.
func (r *Request) Add(names ...string) {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := r.seen[name]; ok {
			continue
		}
		r.seen[name] = struct{}{}
		r.names = append(r.names, name)
	}
}

// Contains reports whether name was requested.
func (r *Request) Contains(name string) bool {
	_, ok := r.seen[name]
	return ok
}

// Len returns the number of distinct packages.
func (r *Request) Len() int { return len(r.names) }

// ToOrderedList returns the packages in insertion order.
func (r *Request) ToOrderedList() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
