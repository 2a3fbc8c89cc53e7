// Package docs carries the OpenAPI description of the API. The spec is
// embedded so the binary serves it without a working directory dependency.
package docs

import _ "embed"

//go:embed swagger.yaml
var Swagger []byte
