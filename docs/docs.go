// Package docs хранит OpenAPI-описание сервиса схем.
package docs

import _ "embed"

//go:embed circuits.openapi.yaml
var OpenAPI []byte
