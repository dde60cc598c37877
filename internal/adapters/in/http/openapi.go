package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// openapiDoc serves the embedded OpenAPI document to swag, which backs the
// /swagger/doc.json endpoint of the UI.
type openapiDoc struct {
	json string
}

func (d openapiDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// LoadOpenAPI parses and validates the embedded document.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// registerSwagger makes doc available to the swagger UI. swag keeps a
// process-wide registry, so only the first call registers.
func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	registerOnce.Do(func() {
		swag.Register(swag.Name, openapiDoc{json: string(raw)})
	})
	return nil
}
