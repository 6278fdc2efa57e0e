package replication

import (
	"errors"
	"fmt"

	"github.com/automoto/sixgun/shared/netconfig"
)

// ErrEndpointGone is returned by a transport when the endpoint has no live connection.
var ErrEndpointGone = errors.New("endpoint has no connection")

// AddressResolutionError reports a client that vanished from the directory
// between the decision to send and the send itself.
type AddressResolutionError struct {
	Client ClientID
}

func (e *AddressResolutionError) Error() string {
	return fmt.Sprintf("client %s not found in registry", e.Client)
}

// CodecError reports a message that could not be encoded or decoded.
type CodecError struct {
	Op   string // "encode" or "decode"
	Kind netconfig.MessageKind
	Err  error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}
