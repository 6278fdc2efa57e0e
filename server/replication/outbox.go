package replication

import (
	"sync"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
)

// Outgoing is one queued envelope and its destination.
type Outgoing struct {
	Endpoint Endpoint
	Envelope messages.Envelope
}

type streamKey struct {
	endpoint Endpoint
	stream   netconfig.StreamID
}

// Outbox is the many-writer queue between the tick and the transport.
// Sequence numbers are assigned at enqueue time so they follow the order in
// which the tick produced the messages for each (endpoint, stream).
type Outbox struct {
	mu    sync.Mutex
	items []Outgoing
	seq   map[streamKey]uint32
}

func NewOutbox() *Outbox {
	return &Outbox{
		seq: make(map[streamKey]uint32),
	}
}

// Enqueue appends an envelope for ep and returns the sequence number it was given.
func (o *Outbox) Enqueue(ep Endpoint, kind netconfig.MessageKind, stream netconfig.StreamID, class netconfig.DeliveryClass, payload []byte) uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := streamKey{endpoint: ep, stream: stream}
	o.seq[key]++
	seq := o.seq[key]

	o.items = append(o.items, Outgoing{
		Endpoint: ep,
		Envelope: messages.Envelope{
			Kind:     kind,
			Stream:   stream,
			Delivery: class,
			Seq:      seq,
			Payload:  payload,
		},
	})
	return seq
}

// Drain removes and returns everything queued so far.
func (o *Outbox) Drain() []Outgoing {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := o.items
	o.items = nil
	return out
}

// Len returns the number of queued envelopes.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

// Forget drops the sequence counters of ep. Call it when the client disconnects.
func (o *Outbox) Forget(ep Endpoint) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for key := range o.seq {
		if key.endpoint == ep {
			delete(o.seq, key)
		}
	}
}
