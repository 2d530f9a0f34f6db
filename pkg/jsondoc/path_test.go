package jsondoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  Path
	}{
		{"", nil},
		{"extends", Path{"extends"}},
		{"devDependencies.babel-core", Path{"devDependencies", "babel-core"}},
		{`settings.editor\.tabSize`, Path{"settings", "editor.tabSize"}},
		{`a\\.b`, Path{`a\`, "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParsePath(tt.input)
			assert.Equal(t, tt.want, got)
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, ParsePath(got.String()), "String() must round trip")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	obj := mustDecode(t, `{"devDependencies":{"tslint":"1.0.0"},"name":"x"}`)

	v, ok := Lookup(obj, ParsePath("devDependencies.tslint"))
	require.True(t, ok)
	assert.Equal(t, "1.0.0", v)

	_, ok = Lookup(obj, ParsePath("devDependencies.eslint"))
	assert.False(t, ok)

	_, ok = Lookup(obj, ParsePath("name.first"))
	assert.False(t, ok, "cannot descend into a scalar")

	root, ok := Lookup(obj, nil)
	require.True(t, ok)
	assert.Same(t, obj, root)
}

func TestAssign(t *testing.T) {
	obj := mustDecode(t, `{"scripts":"oops","keep":1}`)

	Assign(obj, ParsePath("scripts.lint"), "eslint .")
	Assign(obj, ParsePath("a.b.c"), true)

	v, ok := Lookup(obj, ParsePath("scripts.lint"))
	require.True(t, ok)
	assert.Equal(t, "eslint .", v)

	v, ok = Lookup(obj, ParsePath("a.b.c"))
	require.True(t, ok)
	assert.Equal(t, true, v)

	assert.Equal(t, []string{"scripts", "keep", "a"}, obj.Keys())
}
