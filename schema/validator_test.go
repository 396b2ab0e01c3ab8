package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsWellFormedConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "23.7.0",
				"hooks": []interface{}{
					map[string]interface{}{
						"id":               "black",
						"language_version": "python3",
					},
				},
			},
		},
	}

	assert.NoError(t, v.Validate(doc))
}

func TestValidatorRejections(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	testCases := []struct {
		name string
		doc  map[string]interface{}
	}{
		{
			name: "missing repos",
			doc:  map[string]interface{}{},
		},
		{
			name: "repo stanza without repo field",
			doc: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"rev":   "23.7.0",
						"hooks": []interface{}{map[string]interface{}{"id": "black"}},
					},
				},
			},
		},
		{
			name: "hook without id",
			doc: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo":  "https://github.com/psf/black",
						"rev":   "23.7.0",
						"hooks": []interface{}{map[string]interface{}{"name": "black"}},
					},
				},
			},
		},
		{
			name: "unrecognized option key",
			doc: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/psf/black",
						"rev":  "23.7.0",
						"hooks": []interface{}{
							map[string]interface{}{"id": "black", "language_verison": "python3"},
						},
					},
				},
			},
		},
		{
			name: "rev with wrong type",
			doc: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo":  "https://github.com/psf/black",
						"rev":   23.7,
						"hooks": []interface{}{map[string]interface{}{"id": "black"}},
					},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, v.Validate(tc.doc))
		})
	}
}
