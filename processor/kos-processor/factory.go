package kosprocessor

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface is the part of the component registry used at
// registration time.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register adds the kos-processor component to the registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("nil registry")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "kos-processor",
		Factory:     NewComponent,
		Schema:      kosProcessorSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "kos",
		Description: "Resolves URIs to CURIEs and turns raw JSKOS documents into their processed form",
		Version:     "1.0.0",
	})
}
