package document

import (
	"github.com/arthur-debert/projsync/pkg/jsondoc"
)

// Kind is the shape of a configuration document.
type Kind int

const (
	// JSONObject documents hold a single top-level JSON object.
	JSONObject Kind = iota
	// StringList documents hold one entry per line, such as ignore files.
	StringList
)

func (k Kind) String() string {
	switch k {
	case JSONObject:
		return "json"
	case StringList:
		return "lines"
	default:
		return "unknown"
	}
}

// Document is one configuration file as seen during a run.
type Document struct {
	// Path is the absolute path of the file.
	Path string
	// Rel is Path relative to the project root, used for display.
	Rel  string
	Kind Kind

	exists bool
	dirty  bool
	object *jsondoc.Object
	lines  []string
}

// Exists reports whether the file was present on disk when loaded.
func (d *Document) Exists() bool { return d.exists }

// Dirty reports whether the document changed since it was loaded.
func (d *Document) Dirty() bool { return d.dirty }

// Get returns the value at path in a JSON document. For list documents the
// path is ignored and the entries are returned as a list value.
func (d *Document) Get(path jsondoc.Path) (interface{}, bool) {
	if d.Kind == StringList {
		out := make([]interface{}, len(d.lines))
		for i, l := range d.lines {
			out[i] = l
		}
		return out, true
	}
	v, ok := jsondoc.Lookup(d.object, path)
	if !ok {
		return nil, false
	}
	return jsondoc.Clone(v), true
}

// Object returns a copy of a JSON document's root object.
func (d *Document) Object() *jsondoc.Object {
	return d.object.Clone()
}

// Lines returns a copy of a list document's entries.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}
