package game

import "errors"

// ErrIllegalAction is returned when an action violates the current legality
// snapshot. The engine rejects bad input instead of clamping it to a legal
// value, so a buggy driver fails loudly; callers should retry with an amount
// drawn from AvailableActions.
var ErrIllegalAction = errors.New("illegal action")

// ErrOutOfTurn is returned when the acting seat does not match ToAct
var ErrOutOfTurn = errors.New("acting out of turn")

// ErrHandOver is returned when an action arrives outside a betting street
var ErrHandOver = errors.New("no betting in progress")
