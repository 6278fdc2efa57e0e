package protocol

import (
	"github.com/automoto/sixgun/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetCombatant  uint = 20
	SyncIDNetProjectile uint = 21
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetCombatant  uint8 = 20
	InterpIDNetProjectile uint8 = 21
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetCombatant,
		netcomponents.NetCombatantData{},
		netcomponents.NetCombatant,
		esync.WithInterpFn(InterpIDNetCombatant, netcomponents.LerpNetCombatant),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetProjectile,
		netcomponents.NetProjectileData{},
		netcomponents.NetProjectile,
		esync.WithInterpFn(InterpIDNetProjectile, netcomponents.LerpNetProjectile),
	); err != nil {
		return err
	}

	return nil
}
