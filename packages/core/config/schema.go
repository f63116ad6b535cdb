package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// fileSchema describes the value types allowed in the user config file.
// Only recognized options are validated.
const fileSchema = `{
  "type": "object",
  "definitions": {
    "stringOrList": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    }
  },
  "properties": {
    "repo":                       {"type": "string"},
    "suite":                      {"type": "string"},
    "test":                       {"$ref": "#/definitions/stringOrList"},
    "namespace":                  {"type": "string"},
    "kubeconfig":                 {"type": "string"},
    "context":                    {"$ref": "#/definitions/stringOrList"},
    "image":                      {"type": "string"},
    "admission-controller-image": {"type": "string"},
    "server-image":               {"type": "string"},
    "server-upgrade-image":       {"type": "string"},
    "sync-gateway-image":         {"type": "string"},
    "storage-class":              {"type": "string"},
    "collect-logs":               {"type": "boolean"},
    "docker-server":              {"type": "string"},
    "docker-username":            {"type": "string"},
    "docker-password":            {"type": "string"},
    "env-file":                   {"type": "string"},
    "verbose":                    {"type": "boolean"}
  }
}`

var fileSchemaLoader = gojsonschema.NewStringLoader(fileSchema)

// validateDocument checks a decoded config file against fileSchema and
// returns a single error listing every violation.
func validateDocument(doc map[string]any) error {
	result, err := gojsonschema.Validate(fileSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
