package core

import (
	"context"
	"errors"
	"testing"

	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNecsTransport_Send(t *testing.T) {
	tr := NewNecsTransport()
	conn := &fakeConn{}
	tr.Bind("ep-1", conn)

	env := messages.Envelope{Kind: netconfig.KindAmmoUpdate, Stream: netconfig.StreamAmmoUpdate, Seq: 3}
	require.NoError(t, tr.Send(context.Background(), "ep-1", env))
	assert.Equal(t, []any{env}, conn.sent)
}

func TestNecsTransport_UnknownEndpoint(t *testing.T) {
	tr := NewNecsTransport()
	err := tr.Send(context.Background(), "ep-404", messages.Envelope{})
	assert.ErrorIs(t, err, replication.ErrEndpointGone)

	tr.Bind("ep-1", &fakeConn{})
	tr.Unbind("ep-1")
	assert.Zero(t, tr.Len())
	err = tr.Send(context.Background(), "ep-1", messages.Envelope{})
	assert.ErrorIs(t, err, replication.ErrEndpointGone)
}

func TestNecsTransport_WrapsWriteErrors(t *testing.T) {
	tr := NewNecsTransport()
	boom := errors.New("broken pipe")
	tr.Bind("ep-1", &fakeConn{err: boom})

	err := tr.Send(context.Background(), "ep-1", messages.Envelope{Kind: netconfig.KindShotEvent})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, replication.ErrEndpointGone)
}

func TestNecsTransport_CanceledContext(t *testing.T) {
	tr := NewNecsTransport()
	conn := &fakeConn{}
	tr.Bind("ep-1", conn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tr.Send(ctx, "ep-1", messages.Envelope{}), context.Canceled)
	assert.Empty(t, conn.sent)
}
