package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/jskos/model"
)

const exampleDoc = `{
	"id": "http://example.org/voc",
	"type": "http://www.w3.org/2004/02/skos/core#ConceptScheme",
	"title": {"en": "Example Vocabulary"},
	"description": {"en": "A small example."},
	"hasTopConcept": [
		{
			"uri": "http://example.org/voc/c1",
			"type": ["http://www.w3.org/2004/02/skos/core#Concept"],
			"notation": ["C1"],
			"prefLabel": {"de": "Erstes", "en": "First"},
			"altLabel": {"en": ["One", "Uno"]},
			"created": "2001",
			"modified": "2020-05-01",
			"creator": [null, {"uri": "http://example.org/agents/a"}],
			"narrower": [
				null,
				{
					"uri": "http://example.org/voc/c2",
					"prefLabel": {"en": "Second"},
					"broader": [{"uri": "http://example.org/voc/c1"}]
				}
			],
			"qualifiedDates": {
				"http://purl.org/dc/terms/issued": {"date": "1999-12", "rank": "normal"}
			},
			"deprecated": false,
			"mappings": [
				{
					"from": {"memberSet": [{"uri": "http://example.org/voc/c1"}]},
					"to": {"memberSet": [{"uri": "http://other.example.org/x"}]},
					"mappingRelevance": 0.8,
					"justification": "http://www.w3.org/2004/02/skos/core#exactMatch"
				}
			],
			"annotations": [
				{
					"@context": "http://www.w3.org/ns/anno.jsonld",
					"type": "Annotation",
					"id": "http://example.org/anno/1",
					"target": "http://example.org/voc/c1"
				}
			]
		}
	]
}`

func TestRoundTrip(t *testing.T) {
	var kos model.KOS
	require.NoError(t, json.Unmarshal([]byte(exampleDoc), &kos))
	require.NoError(t, kos.Validate())

	out, err := json.Marshal(&kos)
	require.NoError(t, err)
	assert.JSONEq(t, exampleDoc, string(out))
}

func TestDecodePreservesNullPlaceholders(t *testing.T) {
	var kos model.KOS
	require.NoError(t, json.Unmarshal([]byte(exampleDoc), &kos))

	c1 := kos.HasTopConcept[0]
	require.Len(t, c1.Creator, 2)
	assert.Nil(t, c1.Creator[0])
	require.NotNil(t, c1.Creator[1])
	assert.Equal(t, "http://example.org/agents/a", c1.Creator[1].URI)

	require.Len(t, c1.Narrower, 2)
	assert.Nil(t, c1.Narrower[0])
	require.NotNil(t, c1.Narrower[1])
	assert.Equal(t, "http://example.org/voc/c2", c1.Narrower[1].URI)
}

func TestDecodeDiscardsUnknownKeys(t *testing.T) {
	doc := `{
		"@context": "https://gbv.github.io/jskos/context.json",
		"id": "http://example.org/voc",
		"type": "http://example.org/kos",
		"title": {"en": "T"},
		"description": {"en": "D"},
		"EXTENSION-FIELD": {"anything": true}
	}`
	var kos model.KOS
	require.NoError(t, json.Unmarshal([]byte(doc), &kos))
	require.NoError(t, kos.Validate())

	out, err := json.Marshal(&kos)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "@context")
	assert.NotContains(t, string(out), "EXTENSION-FIELD")
}

func TestMappingWireNames(t *testing.T) {
	doc := `{
		"from": {"memberSet": [{"uri": "http://example.org/a"}]},
		"to": {"memberChoice": [{"uri": "http://example.org/b"}, {"uri": "http://example.org/c"}]},
		"fromScheme": {"uri": "http://example.org/scheme"},
		"mappingRelevance": 1.0
	}`
	var m model.Mapping
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	require.NoError(t, m.Validate())

	require.NotNil(t, m.From)
	require.Len(t, m.From.MemberSet, 1)
	assert.Equal(t, "http://example.org/a", m.From.MemberSet[0].URI)
	require.NotNil(t, m.To)
	assert.Len(t, m.To.MemberChoice, 2)
	require.NotNil(t, m.FromScheme)
	assert.Equal(t, "http://example.org/scheme", m.FromScheme.URI)
}

func TestDateValid(t *testing.T) {
	tests := []struct {
		date  model.Date
		valid bool
	}{
		{"2001", true},
		{"2001-04", true},
		{"2001-04-09", true},
		{"-0333", true},
		{"2001-4-9", false},
		{"04-09", false},
		{"yesterday", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.date.Valid(), "date %q", tt.date)
	}
}

func TestRankIsValid(t *testing.T) {
	assert.True(t, model.RankPreferred.IsValid())
	assert.True(t, model.RankNormal.IsValid())
	assert.True(t, model.RankDeprecated.IsValid())
	assert.False(t, model.Rank("primary").IsValid())
	assert.False(t, model.Rank("").IsValid())
}
