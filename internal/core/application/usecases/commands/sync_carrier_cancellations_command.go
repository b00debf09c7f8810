package commands

import (
	"errors"

	"shop/internal/pkg/guard"
)

var (
	ErrSyncCarrierCancellationsCommandIsNotConstructed = errors.New(
		"SyncCarrierCancellationsCommand must be created via NewSyncCarrierCancellationsCommand constructor",
	)

	// ErrNoOrdersAwaitingSync signals a run with nothing to reconcile.
	// Expected during normal operation; jobs treat it as a quiet no-op.
	ErrNoOrdersAwaitingSync = errors.New("no orders awaiting carrier sync")
)

// SyncCarrierCancellationsCommand triggers one reconciliation pass over
// cancelled orders whose carrier-side cancellation has not been acknowledged.
// Parameterless; exists so the job layer shares the command discipline of all
// other write operations.
type SyncCarrierCancellationsCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncCarrierCancellationsCommand creates a reconciliation command.
func NewSyncCarrierCancellationsCommand() SyncCarrierCancellationsCommand {
	return SyncCarrierCancellationsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SyncCarrierCancellationsCommand) Validate() error {
	return c.guard.Validate(ErrSyncCarrierCancellationsCommandIsNotConstructed)
}
