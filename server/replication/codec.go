package replication

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

var errNonFinite = errors.New("non-finite float")

// Codec turns combat messages into payload bytes and back.
type Codec interface {
	Encode(msg messages.CombatMessage) ([]byte, error)
	Decode(data []byte) (messages.CombatMessage, error)
}

// MsgpackCodec writes a one-byte message kind followed by the msgpack body.
type MsgpackCodec struct {
	handle *codec.MsgpackHandle
}

var _ Codec = (*MsgpackCodec)(nil)

func NewMsgpackCodec() *MsgpackCodec {
	return &MsgpackCodec{handle: &codec.MsgpackHandle{}}
}

func (c *MsgpackCodec) Encode(msg messages.CombatMessage) ([]byte, error) {
	if msg == nil {
		return nil, &CodecError{Op: "encode", Err: errors.New("nil message")}
	}
	kind := msg.Kind()
	if err := checkFinite(msg); err != nil {
		return nil, &CodecError{Op: "encode", Kind: kind, Err: err}
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(kind))
	if err := codec.NewEncoder(&buf, c.handle).Encode(msg); err != nil {
		return nil, &CodecError{Op: "encode", Kind: kind, Err: err}
	}
	return buf.Bytes(), nil
}

func (c *MsgpackCodec) Decode(data []byte) (messages.CombatMessage, error) {
	if len(data) == 0 {
		return nil, &CodecError{Op: "decode", Err: errors.New("empty payload")}
	}
	kind := netconfig.MessageKind(data[0])
	dec := codec.NewDecoder(bytes.NewReader(data[1:]), c.handle)

	switch kind {
	case netconfig.KindAmmoUpdate:
		var m messages.AmmoUpdate
		if err := dec.Decode(&m); err != nil {
			return nil, &CodecError{Op: "decode", Kind: kind, Err: err}
		}
		return m, nil
	case netconfig.KindWeaponSwitch:
		var m messages.WeaponSwitch
		if err := dec.Decode(&m); err != nil {
			return nil, &CodecError{Op: "decode", Kind: kind, Err: err}
		}
		return m, nil
	case netconfig.KindShotEvent:
		var m messages.ShotEvent
		if err := dec.Decode(&m); err != nil {
			return nil, &CodecError{Op: "decode", Kind: kind, Err: err}
		}
		return m, nil
	default:
		return nil, &CodecError{Op: "decode", Kind: kind, Err: fmt.Errorf("unknown message kind %d", data[0])}
	}
}

// checkFinite rejects positions and velocities a client could not render.
func checkFinite(msg messages.CombatMessage) error {
	var ev messages.ShotEvent
	switch m := msg.(type) {
	case messages.ShotEvent:
		ev = m
	case *messages.ShotEvent:
		ev = *m
	default:
		return nil
	}
	for _, f := range []float64{ev.Position.X, ev.Position.Y, ev.Velocity.X, ev.Velocity.Y, ev.BulletTimeLimitSecs} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errNonFinite
		}
	}
	return nil
}
