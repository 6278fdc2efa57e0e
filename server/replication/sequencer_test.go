package replication

import (
	"math"
	"testing"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func sequenced(stream netconfig.StreamID, seq uint32) messages.Envelope {
	return messages.Envelope{Stream: stream, Delivery: netconfig.DeliveryReliableSequenced, Seq: seq}
}

func TestSequencer_DropsStale(t *testing.T) {
	s := NewSequencer()

	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 1)))
	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 3)))
	assert.False(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 2)), "late arrival must not overwrite")
	assert.False(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 3)), "duplicate")
	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 4)))
}

func TestSequencer_StreamsIndependent(t *testing.T) {
	s := NewSequencer()

	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 10)))
	assert.True(t, s.Accept(sequenced(netconfig.StreamWeaponSwitch, 1)))
	assert.True(t, s.Accept(sequenced(netconfig.StreamShotEvent, 1)))
}

func TestSequencer_OtherClassesAlwaysAccepted(t *testing.T) {
	s := NewSequencer()
	env := messages.Envelope{Stream: netconfig.StreamShotEvent, Delivery: netconfig.DeliveryUnreliable, Seq: 1}

	assert.True(t, s.Accept(env))
	assert.True(t, s.Accept(env))
}

func TestSequencer_Wraparound(t *testing.T) {
	s := NewSequencer()

	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, math.MaxUint32)))
	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 0)))
	assert.False(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, math.MaxUint32)))
}

func TestSequencer_Reset(t *testing.T) {
	s := NewSequencer()
	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 5)))
	s.Reset()
	assert.True(t, s.Accept(sequenced(netconfig.StreamAmmoUpdate, 1)))
}
