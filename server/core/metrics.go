package core

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/sixgun/server/core"

type serverMetrics struct {
	hits         metric.Int64Counter
	eliminations metric.Int64Counter
	joins        metric.Int64Counter
}

func newServerMetrics() (serverMetrics, error) {
	m := otel.Meter(instrumentationName)

	var (
		sm  serverMetrics
		err error
	)

	sm.hits, err = m.Int64Counter(
		"combat.projectile.hits",
		metric.WithDescription("Projectiles that struck a combatant"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating hits counter: %w", err)
	}

	sm.eliminations, err = m.Int64Counter(
		"combat.eliminations",
		metric.WithDescription("Combatants reduced to zero health"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating eliminations counter: %w", err)
	}

	sm.joins, err = m.Int64Counter(
		"server.joins",
		metric.WithDescription("Join requests by outcome"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating joins counter: %w", err)
	}

	return sm, nil
}
