package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/jskos/model"
)

func validKOS() *model.KOS {
	return &model.KOS{
		ID:          "http://example.org/voc",
		Type:        "http://example.org/kos",
		Title:       model.LanguageMap{"en": "T"},
		Description: model.LanguageMap{"en": "D"},
	}
}

func TestKOSRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.KOS)
		field  string
	}{
		{name: "missing id", mutate: func(k *model.KOS) { k.ID = "" }, field: "id"},
		{name: "missing type", mutate: func(k *model.KOS) { k.Type = "" }, field: "type"},
		{name: "missing title", mutate: func(k *model.KOS) { k.Title = nil }, field: "title"},
		{name: "missing description", mutate: func(k *model.KOS) { k.Description = nil }, field: "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kos := validKOS()
			tt.mutate(kos)
			err := kos.Validate()
			require.Error(t, err)

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateReportsFieldPath(t *testing.T) {
	kos := validKOS()
	kos.HasTopConcept = []*model.Concept{
		{
			Narrower: model.ConceptSet{
				nil,
				{Identity: model.Identity{URI: "not a uri"}},
			},
		},
	}

	err := kos.Validate()
	require.Error(t, err)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "hasTopConcept[0].narrower[1].uri", verr.Field)
}

func TestValidateRankAndIntervals(t *testing.T) {
	c := &model.Concept{}
	c.Rank = model.Rank("primary")
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank")

	over := 1.5
	m := &model.Mapping{
		From:             &model.ConceptBundle{},
		To:               &model.ConceptBundle{},
		MappingRelevance: &over,
	}
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mappingRelevance")

	neg := -0.1
	o := &model.Occurrence{Frequency: &neg}
	err = o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency")
}

func TestValidateMappingRequiresBundles(t *testing.T) {
	m := &model.Mapping{To: &model.ConceptBundle{}}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")

	m = &model.Mapping{From: &model.ConceptBundle{}}
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}

func TestValidateQualifiedDictKeys(t *testing.T) {
	c := &model.Concept{}
	c.QualifiedRelations = map[string]*model.QualifiedRelation{
		"not a uri": {Resource: &model.Resource{}},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is not an absolute URI")
}

func TestValidateTerminatesOnCycles(t *testing.T) {
	a := &model.Concept{Identity: model.Identity{URI: "http://example.org/a"}}
	b := &model.Concept{Identity: model.Identity{URI: "http://example.org/b"}}
	a.Broader = model.ConceptSet{b}
	b.Broader = model.ConceptSet{a}
	a.Narrower = model.ConceptSet{b}

	require.NoError(t, a.Validate())
}
