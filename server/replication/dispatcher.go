package replication

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const defaultFlushConcurrency = 8

// Dispatcher encodes combat messages, queues them in the outbox and flushes
// them to a transport once per tick. Sending never blocks the tick.
type Dispatcher struct {
	directory Directory
	codec     Codec
	outbox    *Outbox
	logger    zerolog.Logger

	flushConcurrency int

	enqueued metric.Int64Counter
	sent     metric.Int64Counter
	skipped  metric.Int64Counter
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFlushConcurrency bounds how many endpoints are flushed in parallel.
func WithFlushConcurrency(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.flushConcurrency = n
		}
	}
}

// NewDispatcher creates a dispatcher broadcasting to every endpoint in dir.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewDispatcher(dir Directory, c Codec, logger zerolog.Logger, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		directory:        dir,
		codec:            c,
		outbox:           NewOutbox(),
		logger:           logger.With().Str("component", "replication").Logger(),
		flushConcurrency: defaultFlushConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}

	m := meter()
	var err error

	d.enqueued, err = m.Int64Counter(
		"replication.messages.enqueued",
		metric.WithDescription("Envelopes queued for delivery"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating enqueued counter: %w", err)
	}

	d.sent, err = m.Int64Counter(
		"replication.messages.sent",
		metric.WithDescription("Envelopes handed to the transport"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sent counter: %w", err)
	}

	d.skipped, err = m.Int64Counter(
		"replication.messages.skipped",
		metric.WithDescription("Messages dropped before reaching the transport"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	return d, nil
}

// SendTo queues msg for ep on stream. The only error is a *CodecError, in
// which case nothing is queued.
func (d *Dispatcher) SendTo(ep Endpoint, msg messages.CombatMessage, stream netconfig.StreamID, class netconfig.DeliveryClass) error {
	payload, err := d.codec.Encode(msg)
	if err != nil {
		d.skip(reasonCodec, 1)
		return err
	}
	d.enqueue(ep, msg.Kind(), stream, class, payload)
	return nil
}

// Broadcast queues msg for every endpoint currently in the directory. The
// message is encoded once and the payload shared.
func (d *Dispatcher) Broadcast(msg messages.CombatMessage, stream netconfig.StreamID, class netconfig.DeliveryClass) error {
	endpoints := d.directory.Endpoints()
	payload, err := d.codec.Encode(msg)
	if err != nil {
		d.skip(reasonCodec, len(endpoints))
		return err
	}
	kind := msg.Kind()
	for _, ep := range endpoints {
		d.enqueue(ep, kind, stream, class, payload)
	}
	return nil
}

func (d *Dispatcher) enqueue(ep Endpoint, kind netconfig.MessageKind, stream netconfig.StreamID, class netconfig.DeliveryClass, payload []byte) {
	d.outbox.Enqueue(ep, kind, stream, class, payload)
	d.enqueued.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("stream", stream.String())))
}

// Pending returns the number of envelopes waiting for the next flush.
func (d *Dispatcher) Pending() int {
	return d.outbox.Len()
}

// Flush hands every queued envelope to t and returns how many were accepted.
// Endpoints are flushed concurrently; envelopes for one endpoint keep their
// queue order. After ErrEndpointGone the rest of that endpoint's envelopes
// are dropped.
func (d *Dispatcher) Flush(ctx context.Context, t Transport) int {
	items := d.outbox.Drain()
	if len(items) == 0 {
		return 0
	}

	var order []Endpoint
	byEndpoint := make(map[Endpoint][]messages.Envelope)
	for _, it := range items {
		if _, ok := byEndpoint[it.Endpoint]; !ok {
			order = append(order, it.Endpoint)
		}
		byEndpoint[it.Endpoint] = append(byEndpoint[it.Endpoint], it.Envelope)
	}

	var sent atomic.Int64
	var g errgroup.Group
	g.SetLimit(d.flushConcurrency)
	for _, ep := range order {
		envs := byEndpoint[ep]
		g.Go(func() error {
			sent.Add(int64(d.flushEndpoint(ctx, t, ep, envs)))
			return nil
		})
	}
	_ = g.Wait()

	n := int(sent.Load())
	if n > 0 {
		d.sent.Add(ctx, int64(n))
	}
	return n
}

func (d *Dispatcher) flushEndpoint(ctx context.Context, t Transport, ep Endpoint, envs []messages.Envelope) int {
	sent := 0
	for i, env := range envs {
		if ctx.Err() != nil {
			d.skip(reasonCanceled, len(envs)-i)
			return sent
		}
		err := t.Send(ctx, ep, env)
		if err == nil {
			sent++
			continue
		}
		if errors.Is(err, ErrEndpointGone) {
			d.logger.Debug().Str("endpoint", string(ep)).Int("dropped", len(envs)-i).Msg("endpoint gone")
			d.skip(reasonGone, len(envs)-i)
			return sent
		}
		d.logger.Warn().Err(err).
			Str("endpoint", string(ep)).
			Str("stream", env.Stream.String()).
			Uint32("seq", env.Seq).
			Msg("send failed")
		d.skip(reasonTransport, 1)
	}
	return sent
}

// Forget drops per-stream state for ep after its client disconnected.
func (d *Dispatcher) Forget(ep Endpoint) {
	d.outbox.Forget(ep)
}

const (
	reasonCodec     = "codec"
	reasonGone      = "endpoint_gone"
	reasonTransport = "transport"
	reasonCanceled  = "canceled"
)

func (d *Dispatcher) skip(reason string, n int) {
	if n <= 0 {
		return
	}
	d.skipped.Add(context.Background(), int64(n),
		metric.WithAttributes(attribute.String("reason", reason)))
}
