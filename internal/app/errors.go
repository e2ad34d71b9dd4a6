package service

import "errors"

// Sentinel kinds for game-state errors.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrTierLocked         = errors.New("tier locked")
	ErrUnknownTier        = errors.New("unknown tier")
	ErrUnknownItem        = errors.New("unknown inventory item")
	ErrUnknownUpgrade     = errors.New("unknown upgrade")
	ErrAlreadyClaimed     = errors.New("ticket already claimed")
	ErrNotFullyRevealed   = errors.New("ticket not fully revealed")
	ErrUpgradeCapped      = errors.New("upgrade at level cap")
	ErrRequirementsUnmet  = errors.New("upgrade requirements not met")
	ErrAlreadyUnlocked    = errors.New("tier already unlocked")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidIndex       = errors.New("tile index out of range")
	ErrInvalidSave        = errors.New("invalid save data")
	ErrNoBonusBox         = errors.New("ticket has no bonus box")
)
