// Package api holds the OpenAPI contract of the HTTP interface.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPI []byte
