package kosingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface is the part of the component registry used at
// registration time.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register adds the kos-ingester component to the registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("nil registry")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "kos-ingester",
		Factory:     NewComponent,
		Schema:      kosIngesterSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "kos",
		Description: "Reads and validates JSKOS documents from disk or HTTP and publishes them for processing",
		Version:     "1.0.0",
	})
}
