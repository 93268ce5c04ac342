package ports

import "satchel/internal/domain"

// Notifier is the fire-and-forget event stream consumed by the external
// observer. Emit must never block or fail the caller.
type Notifier interface {
	Emit(event domain.Event)
}
