package document

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/rs/zerolog"
)

// Status is the outcome of flushing one document.
type Status string

const (
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusFailed    Status = "failed"
)

// FlushStatus reports what happened to one document at the end of a run.
type FlushStatus struct {
	Path    string
	Rel     string
	Kind    Kind
	Status  Status
	Created bool
	Err     error
}

// Store caches the documents of one run. It is not safe for concurrent use.
type Store struct {
	fs     types.FS
	root   string
	logger zerolog.Logger

	docs     map[string]*Document
	order    []string
	failures map[string]error
}

// NewStore creates a store resolving relative paths against root.
func NewStore(fsys types.FS, root string) *Store {
	return &Store{
		fs:       fsys,
		root:     root,
		logger:   logging.GetLogger("document.store"),
		docs:     make(map[string]*Document),
		failures: make(map[string]error),
	}
}

// Root returns the project directory.
func (s *Store) Root() string { return s.root }

// Resolve turns a project-relative path into the key used by the store.
func (s *Store) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

func (s *Store) rel(abs string) string {
	if rel, err := filepath.Rel(s.root, abs); err == nil {
		return rel
	}
	return abs
}

// Get returns the document at path, loading it on first use. A missing file
// yields an empty document. Once a document failed to load, every later Get
// returns the same error.
func (s *Store) Get(path string, kind Kind) (*Document, error) {
	abs := s.Resolve(path)

	if err, failed := s.failures[abs]; failed {
		return nil, err
	}
	if doc, ok := s.docs[abs]; ok {
		if doc.Kind != kind {
			return nil, errors.Newf(errors.ErrKindMismatch,
				"%s was opened as %s, requested as %s", doc.Rel, doc.Kind, kind).WithPath(abs)
		}
		return doc, nil
	}

	doc, err := s.load(abs, kind)
	if err != nil {
		s.fail(abs, err)
		return nil, err
	}
	s.docs[abs] = doc
	s.order = append(s.order, abs)
	return doc, nil
}

func (s *Store) load(abs string, kind Kind) (*Document, error) {
	doc := &Document{Path: abs, Rel: s.rel(abs), Kind: kind}

	data, err := s.fs.ReadFile(abs)
	switch {
	case err == nil:
		doc.exists = true
	case isNotExist(err):
		data = nil
	default:
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", doc.Rel).WithPath(abs)
	}

	switch kind {
	case JSONObject:
		if len(bytes.TrimSpace(data)) == 0 {
			doc.object = jsondoc.NewObject()
			break
		}
		obj, err := jsondoc.Decode(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedDocument, "cannot parse %s as JSON object", doc.Rel).WithPath(abs)
		}
		doc.object = obj
	case StringList:
		doc.lines = parseLines(data)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown document kind %d", kind).WithPath(abs)
	}

	s.logger.Debug().
		Str("path", doc.Rel).
		Str("kind", kind.String()).
		Bool("exists", doc.exists).
		Msg("Loaded document")
	return doc, nil
}

func (s *Store) fail(abs string, err error) {
	if _, ok := s.failures[abs]; ok {
		return
	}
	s.failures[abs] = err
	s.order = appendUnique(s.order, abs)
	s.logger.Warn().Err(err).Str("path", s.rel(abs)).Msg("Document failed")
}

// Set replaces the value at path in a JSON document. The document is marked
// dirty only when the new value differs structurally from the current one.
// An empty path replaces the whole document and requires an object.
func (s *Store) Set(doc *Document, path jsondoc.Path, value interface{}) (bool, error) {
	if doc.Kind != JSONObject {
		return false, errors.Newf(errors.ErrKindMismatch, "%s is not a JSON document", doc.Rel).WithPath(doc.Path)
	}
	value, err := jsondoc.FromGo(value)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "cannot store value in %s", doc.Rel).WithPath(doc.Path)
	}

	if len(path) == 0 {
		obj, ok := value.(*jsondoc.Object)
		if !ok {
			return false, errors.Newf(errors.ErrInvalidInput,
				"root of %s must be an object, got %T", doc.Rel, value).WithPath(doc.Path)
		}
		if jsondoc.Equal(doc.object, obj) {
			return false, nil
		}
		doc.object = obj
		s.markDirty(doc, path)
		return true, nil
	}

	current, ok := jsondoc.Lookup(doc.object, path)
	if ok && jsondoc.Equal(current, value) {
		return false, nil
	}
	jsondoc.Assign(doc.object, path, value)
	s.markDirty(doc, path)
	return true, nil
}

// SetLines replaces the entries of a list document, marking it dirty only
// when they differ.
func (s *Store) SetLines(doc *Document, lines []string) (bool, error) {
	if doc.Kind != StringList {
		return false, errors.Newf(errors.ErrKindMismatch, "%s is not a list document", doc.Rel).WithPath(doc.Path)
	}
	if equalLines(doc.lines, lines) {
		return false, nil
	}
	doc.lines = append([]string(nil), lines...)
	s.markDirty(doc, nil)
	return true, nil
}

func (s *Store) markDirty(doc *Document, path jsondoc.Path) {
	doc.dirty = true
	s.logger.Debug().Str("path", doc.Rel).Str("key", path.String()).Msg("Document changed")
}

// Flush writes doc if it is dirty and reports whether it was written.
func (s *Store) Flush(doc *Document) (bool, error) {
	if !doc.dirty {
		return false, nil
	}

	var data []byte
	switch doc.Kind {
	case JSONObject:
		data = jsondoc.Encode(doc.object)
	case StringList:
		data = renderLines(doc.lines)
	}

	if err := s.fs.MkdirAll(filepath.Dir(doc.Path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", doc.Rel).WithPath(doc.Path)
	}
	if err := s.fs.WriteFile(doc.Path, data, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", doc.Rel).WithPath(doc.Path)
	}

	doc.dirty = false
	doc.exists = true
	s.logger.Info().Str("path", doc.Rel).Int("bytes", len(data)).Msg("Wrote document")
	return true, nil
}

// FlushAll flushes every document touched this run, in first-touch order.
// With dryRun nothing is written and dirty documents are reported as changed.
func (s *Store) FlushAll(dryRun bool) []FlushStatus {
	statuses := make([]FlushStatus, 0, len(s.order))
	for _, abs := range s.order {
		if err, failed := s.failures[abs]; failed {
			statuses = append(statuses, FlushStatus{Path: abs, Rel: s.rel(abs), Status: StatusFailed, Err: err})
			continue
		}

		doc := s.docs[abs]
		st := FlushStatus{Path: abs, Rel: doc.Rel, Kind: doc.Kind, Status: StatusUnchanged}
		if !doc.dirty {
			statuses = append(statuses, st)
			continue
		}

		st.Status = StatusChanged
		st.Created = !doc.exists
		if dryRun {
			statuses = append(statuses, st)
			continue
		}
		if _, err := s.Flush(doc); err != nil {
			s.fail(abs, err)
			st.Status = StatusFailed
			st.Err = err
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Failed returns the error recorded for path, if any.
func (s *Store) Failed(path string) error {
	return s.failures[s.Resolve(path)]
}

// Failures returns every document failure keyed by absolute path.
func (s *Store) Failures() map[string]error {
	out := make(map[string]error, len(s.failures))
	for k, v := range s.failures {
		out[k] = v
	}
	return out
}

// Documents returns the successfully loaded documents in first-touch order.
func (s *Store) Documents() []*Document {
	out := make([]*Document, 0, len(s.docs))
	for _, abs := range s.order {
		if doc, ok := s.docs[abs]; ok {
			out = append(out, doc)
		}
	}
	return out
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || stderrors.Is(err, fs.ErrNotExist)
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func appendUnique(list []string, s string) []string {
	for _, item := range list {
		if item == s {
			return list
		}
	}
	return append(list, s)
}
