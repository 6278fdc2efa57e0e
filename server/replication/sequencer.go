package replication

import (
	"sync"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
)

// Sequencer is the receive side of reliable-sequenced delivery. It accepts an
// envelope only when it is newer than the last one accepted on its stream,
// so late arrivals are dropped instead of overwriting fresher state.
type Sequencer struct {
	mu   sync.Mutex
	last map[netconfig.StreamID]uint32
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		last: make(map[netconfig.StreamID]uint32),
	}
}

// Accept reports whether env should be applied. Envelopes of other delivery
// classes are always accepted.
func (s *Sequencer) Accept(env messages.Envelope) bool {
	if env.Delivery != netconfig.DeliveryReliableSequenced {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last, seen := s.last[env.Stream]
	if seen && !seqNewer(env.Seq, last) {
		return false
	}
	s.last[env.Stream] = env.Seq
	return true
}

// Reset forgets all streams, e.g. after reconnecting.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.last)
}

// seqNewer compares with wraparound: a is newer when it is less than half the
// sequence space ahead of b.
func seqNewer(a, b uint32) bool {
	return int32(a-b) > 0
}
