package game

import "fmt"

// ActionKind enumerates the betting moves a player can make
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

// String returns the action kind name
func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "all-in"
	}
	return "unknown"
}

// Action is a single betting decision. For Bet, Raise and AllIn the amount
// is the target total bet for the street, not an increment; for Call it is
// the exact amount owed. Fold and Check carry no amount.
type Action struct {
	Kind   ActionKind
	Amount int
}

// FoldAction builds a fold
func FoldAction() Action { return Action{Kind: Fold} }

// CheckAction builds a check
func CheckAction() Action { return Action{Kind: Check} }

// CallAction builds a call of the given owed amount
func CallAction(amount int) Action { return Action{Kind: Call, Amount: amount} }

// BetAction builds an opening bet to the given street total
func BetAction(amount int) Action { return Action{Kind: Bet, Amount: amount} }

// RaiseAction builds a raise to the given street total
func RaiseAction(amount int) Action { return Action{Kind: Raise, Amount: amount} }

// AllInAction builds an all-in; amount must be the actor's current bet plus
// their entire remaining stack
func AllInAction(amount int) Action { return Action{Kind: AllIn, Amount: amount} }

// IsAggressive reports whether the action puts new chips at stake beyond a call
func (a Action) IsAggressive() bool {
	return a.Kind == Bet || a.Kind == Raise || a.Kind == AllIn
}

// Description renders the action for logs and hand history, e.g. "raises to 30"
func (a Action) Description() string {
	switch a.Kind {
	case Fold:
		return "folds"
	case Check:
		return "checks"
	case Call:
		return fmt.Sprintf("calls %d", a.Amount)
	case Bet:
		return fmt.Sprintf("bets %d", a.Amount)
	case Raise:
		return fmt.Sprintf("raises to %d", a.Amount)
	case AllIn:
		return fmt.Sprintf("all-in for %d", a.Amount)
	}
	return "unknown"
}

// AvailableActions is a derived snapshot of what the acting player may
// legally do. It is recomputed from current state on every query and never
// cached. A zero amount means the corresponding move is unavailable.
type AvailableActions struct {
	CanFold    bool
	CanCheck   bool
	CallAmount int // exact owed amount; 0 when calling is not an option
	MinBet     int // minimum opening bet; 0 when betting is not an option
	MinRaise   int // minimum raise-to total; 0 when raising is not an option
	MaxRaise   int // the acting player's full remaining stack
}

// NewAvailableActions derives the legal moves from the amount owed, the
// minimum legal raise-to total, the acting player's stack and the big blind.
//
// Calling is offered only when the owed amount is strictly less than the
// stack; owing the whole stack or more leaves all-in as the only way to
// continue. Raising is offered only when the raise-to floor is strictly
// below the stack, for the same reason.
func NewAvailableActions(toCall, minRaiseTo, stack, bigBlind int) AvailableActions {
	actions := AvailableActions{
		CanFold:  toCall > 0,
		CanCheck: toCall == 0,
		MaxRaise: stack,
	}

	if toCall > 0 && toCall < stack {
		actions.CallAmount = toCall
	}

	if actions.CanCheck && stack > 0 {
		actions.MinBet = min(bigBlind, stack)
	}

	if toCall > 0 && minRaiseTo < stack {
		actions.MinRaise = minRaiseTo
	}

	return actions
}
