package curie_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/jskos/curie"
)

func testConverter(t *testing.T) *curie.Converter {
	t.Helper()
	conv, err := curie.NewConverter(map[string]string{
		"skos":     "http://www.w3.org/2004/02/skos/core#",
		"skosxl":   "http://www.w3.org/2008/05/skos-xl#",
		"wikidata": "http://www.wikidata.org/entity/",
		"dct":      "http://purl.org/dc/terms/",
	})
	require.NoError(t, err)
	return conv
}

func TestNewConverterValidation(t *testing.T) {
	tests := []struct {
		name     string
		prefixes map[string]string
		wantErr  string
	}{
		{
			name:     "empty prefix",
			prefixes: map[string]string{"": "http://example.org/"},
			wantErr:  "empty prefix",
		},
		{
			name:     "colon in prefix",
			prefixes: map[string]string{"a:b": "http://example.org/"},
			wantErr:  "contains a colon",
		},
		{
			name:     "empty namespace",
			prefixes: map[string]string{"ex": ""},
			wantErr:  "empty namespace",
		},
		{
			name:     "relative namespace",
			prefixes: map[string]string{"ex": "example.org/ns/"},
			wantErr:  "not an absolute URI",
		},
		{
			name: "duplicate namespace",
			prefixes: map[string]string{
				"a": "http://example.org/ns/",
				"b": "http://example.org/ns/",
			},
			wantErr: "share namespace",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := curie.NewConverter(tt.prefixes)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveStrict(t *testing.T) {
	conv := testConverter(t)

	ref, err := conv.Resolve("http://www.w3.org/2004/02/skos/core#broader", true)
	require.NoError(t, err)
	assert.Equal(t, curie.Reference{Prefix: "skos", Identifier: "broader"}, ref)

	ref, err = conv.Resolve("http://www.wikidata.org/entity/Q406", true)
	require.NoError(t, err)
	assert.Equal(t, "wikidata:Q406", ref.String())
}

func TestResolveStrictUnresolved(t *testing.T) {
	conv := testConverter(t)

	_, err := conv.Resolve("http://example.org/unknown", true)
	require.Error(t, err)

	var unresolved *curie.UnresolvedURIError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "http://example.org/unknown", unresolved.URI)
}

func TestResolveLenient(t *testing.T) {
	conv := testConverter(t)

	ref, err := conv.Resolve("http://example.org/unknown", false)
	require.NoError(t, err)
	assert.True(t, ref.IsOpaque())
	assert.Equal(t, "http://example.org/unknown", ref.String())

	expanded, err := conv.Expand(ref)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/unknown", expanded)
}

func TestResolveLongestNamespaceWins(t *testing.T) {
	conv, err := curie.NewConverter(map[string]string{
		"ex":    "http://example.org/",
		"exsub": "http://example.org/sub/",
	})
	require.NoError(t, err)

	ref, err := conv.Resolve("http://example.org/sub/thing", true)
	require.NoError(t, err)
	assert.Equal(t, "exsub:thing", ref.String())

	ref, err = conv.Resolve("http://example.org/other", true)
	require.NoError(t, err)
	assert.Equal(t, "ex:other", ref.String())
}

func TestExpandRoundTrip(t *testing.T) {
	conv := testConverter(t)
	uris := []string{
		"http://www.w3.org/2004/02/skos/core#prefLabel",
		"http://www.w3.org/2008/05/skos-xl#literalForm",
		"http://purl.org/dc/terms/creator",
		"http://www.wikidata.org/entity/Q406",
	}
	for _, uri := range uris {
		ref, err := conv.Resolve(uri, true)
		require.NoError(t, err)
		expanded, err := conv.Expand(ref)
		require.NoError(t, err)
		assert.Equal(t, uri, expanded)
	}
}

func TestExpandUnknownPrefix(t *testing.T) {
	conv := testConverter(t)

	_, err := conv.Expand(curie.Reference{Prefix: "nope", Identifier: "x"})
	var unknown *curie.UnknownPrefixError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Prefix)
}

func TestMustResolvePanics(t *testing.T) {
	conv := testConverter(t)
	assert.Panics(t, func() {
		conv.MustResolve("http://example.org/unknown")
	})
	assert.NotPanics(t, func() {
		conv.MustResolve("http://purl.org/dc/terms/creator")
	})
}

func TestPrefixesCopy(t *testing.T) {
	conv := testConverter(t)
	got := conv.Prefixes()
	got["skos"] = "mutated"

	ns, ok := conv.Namespace("skos")
	require.True(t, ok)
	assert.Equal(t, "http://www.w3.org/2004/02/skos/core#", ns)
	assert.Equal(t, 4, conv.Len())
}

func TestParseCURIE(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    curie.Reference
		wantErr bool
	}{
		{name: "plain", in: "skos:broader", want: curie.Reference{Prefix: "skos", Identifier: "broader"}},
		{name: "empty identifier", in: "skos:", want: curie.Reference{Prefix: "skos"}},
		{name: "url stays opaque", in: "http://example.org/x", want: curie.Reference{Identifier: "http://example.org/x"}},
		{name: "no colon", in: "broader", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "leading colon", in: ":broader", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := curie.ParseCURIE(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceAsMapKey(t *testing.T) {
	conv := testConverter(t)
	m := map[curie.Reference]string{
		conv.MustResolve("http://www.w3.org/2004/02/skos/core#broader"): "broader",
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"skos:broader": "broader"}`, string(data))

	var back map[curie.Reference]string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}
