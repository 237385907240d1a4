package ports

import "github.com/quickpoll/api/internal/core/domain"

// Broadcaster fans a state-change event out to every live client connection.
// Delivery is best-effort and fire-and-forget; publishers never block on or
// learn about individual send failures.
type Broadcaster interface {
	Publish(event domain.Event)
}
