package services

import "errors"

// Sentinel errors returned by the settlement services. Handlers map these
// to HTTP statuses with errors.Is, so wrap them rather than returning new
// error values for the same condition.
var (
	// ErrGameNotFound means the referenced game does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidState means the game is not in a settleable state: it has
	// not finished, or its result has not been entered yet.
	ErrInvalidState = errors.New("game result has not been entered")

	// ErrAlreadySettled means a settlement record already exists for the
	// game; it must be cancelled before processing again.
	ErrAlreadySettled = errors.New("game is already settled")

	// ErrNotSettled means cancellation was requested for a game that has
	// no active settlement.
	ErrNotSettled = errors.New("game is not settled")

	// ErrInvalidResult means a submitted game result failed validation:
	// the winner is not playing in the game, or the MVP position does not
	// belong to the MVP category.
	ErrInvalidResult = errors.New("invalid game result")

	// ErrConflict means the ledger rejected a write that the settlement
	// guard should have made impossible. Nothing was committed; the run
	// can be retried after inspection.
	ErrConflict = errors.New("settlement conflict")
)
