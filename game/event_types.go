package game

import (
	"headsup/cards"
)

// Hand history event reasons
const (
	HandEndedFold     = "fold"
	HandEndedShowdown = "showdown"
)

// HandStarted represents the event when a new hand begins.
type HandStarted struct {
	HandID     string
	HandNumber int
	Button     Seat
}

func (e HandStarted) EventName() string { return "hand-started" }

// ActionTaken represents the event when a seat takes a betting action.
type ActionTaken struct {
	HandID string
	Phase  Phase
	Seat   Seat
	Action Action
}

func (e ActionTaken) EventName() string { return "action-taken" }

// CommunityCardsDealt represents the event when board cards are revealed.
type CommunityCardsDealt struct {
	HandID string
	Phase  Phase
	Cards  []cards.Card
}

func (e CommunityCardsDealt) EventName() string { return "community-cards-dealt" }

// HandEnded represents the event when a hand is settled by fold or showdown.
// Winner is nil for a split pot.
type HandEnded struct {
	HandID string
	Winner *Seat
	Pot    int
	Reason string
}

func (e HandEnded) EventName() string { return "hand-ended" }
