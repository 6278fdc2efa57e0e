package combat

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/sixgun/server/combat"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type shooterMetrics struct {
	shots    metric.Int64Counter
	reloads  metric.Int64Counter
	switches metric.Int64Counter
}

func newShooterMetrics() (shooterMetrics, error) {
	m := meter()

	var (
		sm  shooterMetrics
		err error
	)

	sm.shots, err = m.Int64Counter(
		"combat.shots.fired",
		metric.WithDescription("Projectiles fired by combatants"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating shots counter: %w", err)
	}

	sm.reloads, err = m.Int64Counter(
		"combat.reloads.completed",
		metric.WithDescription("Magazines refilled after a reload"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating reloads counter: %w", err)
	}

	sm.switches, err = m.Int64Counter(
		"combat.weapon.switches",
		metric.WithDescription("Active weapon changes"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating switches counter: %w", err)
	}

	return sm, nil
}
