package application

import "context"

// Registry stores subscribed addresses. Add reports false when the address
// was already registered.
type Registry interface {
	Add(ctx context.Context, email string) (bool, error)
}
