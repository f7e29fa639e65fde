package rdfexport

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface is the part of the component registry used at
// registration time.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register adds the rdf-export component to the registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("nil registry")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "rdf-export",
		Factory:     NewComponent,
		Schema:      rdfExportSchema,
		Type:        "output",
		Protocol:    "rdf",
		Domain:      "kos",
		Description: "Serializes processed JSKOS documents to RDF (Turtle, N-Triples)",
		Version:     "1.0.0",
	})
}
