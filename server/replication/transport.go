package replication

import (
	"context"

	"github.com/automoto/sixgun/shared/messages"
)

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . Transport

// Transport delivers envelopes to connected endpoints. It returns
// ErrEndpointGone when ep has no live connection.
type Transport interface {
	Send(ctx context.Context, ep Endpoint, env messages.Envelope) error
}
