package ports

import "satchel/internal/domain"

// RegistryStore persists the registry between processes.
type RegistryStore interface {
	// Load reads the durable store. A missing or corrupt store yields an
	// empty state and a nil error; boot never fails on load.
	Load() (*domain.RegistryState, error)

	// Save serializes the three collections. Failures are reported to the
	// caller, which downgrades them to warnings.
	Save(state *domain.RegistryState) error
}
