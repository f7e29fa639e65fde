package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/jskos/model"
)

func TestAnnotationTargetShapes(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, target *model.AnnotationTarget)
	}{
		{
			name: "uri string",
			doc:  `"http://example.org/thing"`,
			check: func(t *testing.T, target *model.AnnotationTarget) {
				assert.Equal(t, "http://example.org/thing", target.URI)
				assert.Nil(t, target.Resource)
				assert.Nil(t, target.Annotation)
			},
		},
		{
			name: "embedded resource",
			doc:  `{"uri": "http://example.org/thing", "rank": "preferred"}`,
			check: func(t *testing.T, target *model.AnnotationTarget) {
				require.NotNil(t, target.Resource)
				assert.Equal(t, "http://example.org/thing", target.Resource.URI)
				assert.Equal(t, model.RankPreferred, target.Resource.Rank)
				assert.Nil(t, target.Annotation)
			},
		},
		{
			name: "nested annotation",
			doc: `{
				"@context": "http://www.w3.org/ns/anno.jsonld",
				"type": "Annotation",
				"id": "http://example.org/anno/inner",
				"target": "http://example.org/thing"
			}`,
			check: func(t *testing.T, target *model.AnnotationTarget) {
				require.NotNil(t, target.Annotation)
				assert.Equal(t, "http://example.org/anno/inner", target.Annotation.ID)
				require.NotNil(t, target.Annotation.Target)
				assert.Equal(t, "http://example.org/thing", target.Annotation.Target.URI)
				assert.Nil(t, target.Resource)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target model.AnnotationTarget
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &target))
			tt.check(t, &target)

			out, err := json.Marshal(target)
			require.NoError(t, err)
			assert.JSONEq(t, tt.doc, string(out))
		})
	}
}

func TestAnnotationTargetRejectsOtherShapes(t *testing.T) {
	for _, doc := range []string{`null`, `42`, `[1, 2]`, `true`} {
		var target model.AnnotationTarget
		assert.Error(t, json.Unmarshal([]byte(doc), &target), "doc %s", doc)
	}
}

func TestAnnotationValidate(t *testing.T) {
	valid := func() *model.Annotation {
		return &model.Annotation{
			Context: "http://www.w3.org/ns/anno.jsonld",
			Type:    "Annotation",
			ID:      "http://example.org/anno/1",
			Target:  &model.AnnotationTarget{URI: "http://example.org/thing"},
		}
	}

	require.NoError(t, valid().Validate())

	a := valid()
	a.Context = ""
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@context")

	a = valid()
	a.Target = nil
	err = a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")

	a = valid()
	a.ID = "not a uri"
	assert.Error(t, a.Validate())
}
