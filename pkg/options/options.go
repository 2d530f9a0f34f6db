package options

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/projsync/pkg/errors"
)

// Config is the resolved configuration for one run.
type Config struct {
	Install InstallConfig `koanf:"install"`
	Options Options       `koanf:"options"`
}

// InstallConfig controls the final package install.
type InstallConfig struct {
	Enabled bool          `koanf:"enabled"`
	Manager string        `koanf:"manager"`
	Timeout time.Duration `koanf:"timeout"`
}

// Options holds task option values by name. Treat it as read-only once
// loaded.
type Options map[string]interface{}

// Lookup returns the raw value for name.
func (o Options) Lookup(name string) (interface{}, bool) {
	v, ok := o[name]
	return v, ok
}

// All returns a copy of every option.
func (o Options) All() map[string]interface{} {
	out := make(map[string]interface{}, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Has reports whether name is set to a non-empty value.
func (o Options) Has(name string) bool {
	v, ok := o[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns name formatted as a string, or "" when unset.
func (o Options) String(name string) string {
	v, ok := o[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns name as a boolean. Strings are parsed with strconv; anything
// unparseable is false.
func (o Options) Bool(name string) bool {
	switch v := o[name].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Names returns the option names in sorted order.
func (o Options) Names() []string {
	names := make([]string, 0, len(o))
	for k := range o {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Require fails with MISSING_REQUIRED_OPTION naming every option in names
// that has no value.
func (o Options) Require(names ...string) error {
	var missing []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !o.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrMissingOption, "missing required option(s): %s", strings.Join(missing, ", ")).
		WithDetail("options", missing)
}
