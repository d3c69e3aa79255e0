package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDoc(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Swagger  string                    `json:"swagger"`
		BasePath string                    `json:"basePath"`
		Info     struct{ Title string }    `json:"info"`
		Paths    map[string]map[string]any `json:"paths"`
		Defs     map[string]any            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "2.0", parsed.Swagger)
	assert.Equal(t, "/api/v1", parsed.BasePath)
	assert.Equal(t, "Purchase Ledger API", parsed.Info.Title)

	routes := map[string][]string{
		"/health":                               {"get"},
		"/purchases/transactions":               {"post"},
		"/purchases/transactions/{id}":          {"get", "put"},
		"/purchases/transactions/{id}/void":     {"post"},
		"/purchases/suppliers/{id}/outstanding": {"get"},
	}
	require.Len(t, parsed.Paths, len(routes))
	for path, methods := range routes {
		for _, method := range methods {
			assert.Contains(t, parsed.Paths[path], method, "%s %s", method, path)
		}
	}
	assert.Contains(t, parsed.Defs, "handler.TransactionRequest")
	assert.Contains(t, parsed.Defs, "purchase.PostingBatch")
}
