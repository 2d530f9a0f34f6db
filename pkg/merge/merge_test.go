package merge

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(t *testing.T, s string) *jsondoc.Object {
	t.Helper()
	o, err := jsondoc.Decode([]byte(s))
	require.NoError(t, err)
	return o
}

func TestDeepMergeObject(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		desired  string
		expected string
	}{
		{
			name:     "nested_objects_merge",
			existing: `{"x":{"y":1}}`,
			desired:  `{"x":{"z":2}}`,
			expected: `{"x":{"y":1,"z":2}}`,
		},
		{
			name:     "conflicting_scalar_overwritten",
			existing: `{"x":1}`,
			desired:  `{"x":2}`,
			expected: `{"x":2}`,
		},
		{
			name:     "type_mismatch_overwritten",
			existing: `{"parser":{"name":"espree"}}`,
			desired:  `{"parser":"babel-eslint"}`,
			expected: `{"parser":"babel-eslint"}`,
		},
		{
			name:     "arrays_union",
			existing: `{"recommendations":["a","b"]}`,
			desired:  `{"recommendations":["b","c"]}`,
			expected: `{"recommendations":["a","b","c"]}`,
		},
		{
			name:     "user_keys_preserved",
			existing: `{"mine":true,"indent_size":4}`,
			desired:  `{"indent_size":2,"end_with_newline":true}`,
			expected: `{"mine":true,"indent_size":2,"end_with_newline":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMergeObject(obj(t, tt.existing), obj(t, tt.desired))
			assert.True(t, jsondoc.Equal(obj(t, tt.expected), got), "got %s", jsondoc.Encode(got))
		})
	}
}

func TestDeepMergeObjectKeepsOrderAndInputs(t *testing.T) {
	existing := obj(t, `{"b":1,"a":{"k":1}}`)
	desired := obj(t, `{"c":3,"a":{"j":2}}`)

	got := DeepMergeObject(existing, desired)

	assert.Equal(t, []string{"b", "a", "c"}, got.Keys())
	assert.Equal(t, `{"b":1,"a":{"k":1}}`, string(mustCompact(t, existing)), "existing must not be mutated")
	assert.Equal(t, `{"c":3,"a":{"j":2}}`, string(mustCompact(t, desired)), "desired must not be mutated")
}

func TestDeepMergeObjectIsIdempotent(t *testing.T) {
	desired := obj(t, `{"editor.formatOnSave":true,"files.exclude":{"**/.git":true},"list":["x"]}`)
	once := DeepMergeObject(obj(t, `{"user":1}`), desired)
	twice := DeepMergeObject(once, desired)
	assert.Equal(t, jsondoc.Encode(once), jsondoc.Encode(twice))
}

func TestUnionAppendUnique(t *testing.T) {
	got := UnionAppendUnique([]interface{}{"a", "b"}, []interface{}{"b", "c"})
	assert.Equal(t, []interface{}{"a", "b", "c"}, got)

	got = UnionAppendUnique(nil, []interface{}{"x", "x", "y"})
	assert.Equal(t, []interface{}{"x", "y"}, got)

	objects := UnionAppendUnique(
		[]interface{}{obj(t, `{"name":"a","port":1}`)},
		[]interface{}{obj(t, `{"port":1,"name":"a"}`), obj(t, `{"name":"b"}`)},
	)
	assert.Len(t, objects, 2, "structurally equal objects are not duplicated")

	flags := UnionAppendUnique([]interface{}{"eslint --fix ."}, []interface{}{"eslint . --fix"})
	assert.Len(t, flags, 2, "no semantic equivalence between command spellings")
}

func TestUnionStrings(t *testing.T) {
	assert.Equal(t, []string{"node_modules/", "dist/", "coverage/"},
		UnionStrings([]string{"node_modules/", "dist/"}, []string{"dist/", "coverage/"}))
	assert.Equal(t, []string{"a"}, UnionStrings(nil, []string{"a", "a"}))
}

func TestScriptCompose(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		fragment  string
		position  Position
		separator string
		want      string
	}{
		{"before", "eslint .", "npm run lint", Before, " && ", "npm run lint && eslint ."},
		{"after", "jest", "npm run lint", After, " && ", "jest && npm run lint"},
		{"empty_existing", "", "npm run lint", Before, " && ", "npm run lint"},
		{"already_present", "npm run lint && jest", "npm run lint", Before, " && ", "npm run lint && jest"},
		{"custom_separator", "jest", "tsc", Before, "; ", "tsc; jest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScriptCompose(tt.existing, tt.fragment, tt.position, tt.separator)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ScriptCompose(got, tt.fragment, tt.position, tt.separator), "second compose must be a no-op")
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("union_over_absent", func(t *testing.T) {
		got, err := Apply(nil, Request{Desired: []interface{}{"tslint-config-prettier"}, Strategy: Strategy{Kind: UnionAppend}})
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"tslint-config-prettier"}, got)
	})

	t.Run("union_over_string_treated_as_empty", func(t *testing.T) {
		got, err := Apply("tslint:recommended", Request{Desired: []interface{}{"x"}, Strategy: Strategy{Kind: UnionAppend}})
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"x"}, got)
	})

	t.Run("union_scalar_entry", func(t *testing.T) {
		got, err := Apply([]interface{}{"a"}, Request{Desired: "b", Strategy: Strategy{Kind: UnionAppend}})
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"a", "b"}, got)
	})

	t.Run("merge_over_absent", func(t *testing.T) {
		got, err := Apply(nil, Request{Desired: obj(t, `{"parser":"babel-eslint"}`)})
		require.NoError(t, err)
		assert.True(t, jsondoc.Equal(obj(t, `{"parser":"babel-eslint"}`), got))
	})

	t.Run("merge_scalar_replaces", func(t *testing.T) {
		got, err := Apply("eslint:recommended", Request{Desired: "airbnb", Strategy: Strategy{Kind: DeepMerge}})
		require.NoError(t, err)
		assert.Equal(t, "airbnb", got)
	})

	t.Run("overwrite", func(t *testing.T) {
		got, err := Apply(json.Number("1"), Request{Desired: json.Number("2"), Strategy: Strategy{Kind: Overwrite}})
		require.NoError(t, err)
		assert.Equal(t, json.Number("2"), got)
	})

	t.Run("compose_defaults", func(t *testing.T) {
		got, err := Apply("jest", Request{Desired: "npm run lint", Strategy: Strategy{Kind: ComposeScript}})
		require.NoError(t, err)
		assert.Equal(t, "npm run lint && jest", got)
	})

	t.Run("compose_requires_string", func(t *testing.T) {
		_, err := Apply("jest", Request{Desired: json.Number("1"), Strategy: Strategy{Kind: ComposeScript}})
		assert.Error(t, err)
	})

	t.Run("unknown_strategy", func(t *testing.T) {
		_, err := Apply(nil, Request{Desired: "x", Strategy: Strategy{Kind: "zip"}})
		assert.Error(t, err)
	})
}

func TestParseStrategy(t *testing.T) {
	kind, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, DeepMerge, kind)

	kind, err = ParseStrategy("set")
	require.NoError(t, err)
	assert.Equal(t, Overwrite, kind)

	_, err = ParseStrategy("replace-all")
	assert.Error(t, err)
}

func mustCompact(t *testing.T, o *jsondoc.Object) []byte {
	t.Helper()
	b, err := o.MarshalJSON()
	require.NoError(t, err)
	return b
}
