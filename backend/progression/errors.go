package progression

import "errors"

var (
	// ErrInvalidAmount rejects non-positive XP gains before any mutation.
	ErrInvalidAmount = errors.New("xp amount must be positive")
	// ErrAlreadyCompleted signals an idempotent no-op on a terminal entity.
	ErrAlreadyCompleted = errors.New("already completed")
	// ErrAlreadyUsed signals a repeated coupon usage; the coupon is unchanged.
	ErrAlreadyUsed = errors.New("coupon already used")
	// ErrInsufficientXP rejects a redemption below the coupon cost.
	ErrInsufficientXP = errors.New("not enough xp")
	// ErrInvalidTransition rejects a lifecycle move from an incompatible status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTargetNotReached rejects goal completion below the target amount.
	ErrTargetNotReached = errors.New("saving goal target not reached")
	// ErrEmptyWheel rejects a spin with no challenges to draw from.
	ErrEmptyWheel = errors.New("no challenges on the wheel")
)
