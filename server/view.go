package server

import (
	"fmt"

	"headsup/cards"
	"headsup/events"
	"headsup/game"
)

// StateView is the client-facing snapshot of a hand. The bot's hole cards
// are omitted until showdown; a folded hand stays mucked.
type StateView struct {
	HandID     string `json:"handId"`
	HandNumber int    `json:"handNumber"`
	Phase      string `json:"phase"`

	PlayerCards []string `json:"playerCards"`
	BotCards    []string `json:"botCards,omitempty"`
	Board       []string `json:"board"`

	Pot         int    `json:"pot"`
	PlayerStack int    `json:"playerStack"`
	BotStack    int    `json:"botStack"`
	PlayerBet   int    `json:"playerBet"`
	BotBet      int    `json:"botBet"`
	Button      string `json:"button"`
	ToAct       string `json:"toAct"`

	YourTurn   bool        `json:"yourTurn"`
	Actions    *ActionView `json:"actions,omitempty"`
	LastAction string      `json:"lastAction,omitempty"`

	Showdown *ShowdownView `json:"showdown,omitempty"`

	HandsPlayed     int     `json:"handsPlayed"`
	HandsWon        int     `json:"handsWon"`
	SessionProfitBB float64 `json:"sessionProfitBb"`
	SessionOver     bool    `json:"sessionOver"`
}

// ActionView mirrors the legality snapshot for the player seat
type ActionView struct {
	CanFold    bool `json:"canFold"`
	CanCheck   bool `json:"canCheck"`
	CallAmount int  `json:"callAmount,omitempty"`
	MinBet     int  `json:"minBet,omitempty"`
	MinRaise   int  `json:"minRaise,omitempty"`
	MaxRaise   int  `json:"maxRaise,omitempty"`
}

// ShowdownView reports the resolved hand once the board runs out
type ShowdownView struct {
	Winner     string `json:"winner,omitempty"` // empty on a split
	PlayerHand string `json:"playerHand"`
	BotHand    string `json:"botHand"`
	PotWon     int    `json:"potWon"`
}

// HandHistoryView lists one hand's recorded events in play order
type HandHistoryView struct {
	HandID string   `json:"handId"`
	Events []string `json:"events"`
}

// BuildHandHistoryView renders stored hand events as readable lines
func BuildHandHistoryView(handID string, recorded []events.Event) HandHistoryView {
	view := HandHistoryView{HandID: handID, Events: make([]string, 0, len(recorded))}
	for _, e := range recorded {
		view.Events = append(view.Events, describeEvent(e))
	}
	return view
}

func describeEvent(e events.Event) string {
	switch ev := e.(type) {
	case game.HandStarted:
		return fmt.Sprintf("hand %d started, button %s", ev.HandNumber, ev.Button)
	case game.ActionTaken:
		return fmt.Sprintf("%s: %s %s", ev.Phase, ev.Seat, ev.Action.Description())
	case game.CommunityCardsDealt:
		return fmt.Sprintf("%s: %s", ev.Phase, cards.Stack(ev.Cards))
	case game.HandEnded:
		taker := "split"
		if ev.Winner != nil {
			taker = ev.Winner.String()
		}
		return fmt.Sprintf("hand ended (%s), pot %d to %s", ev.Reason, ev.Pot, taker)
	default:
		return e.EventName()
	}
}

// BuildStateView constructs the player's view of the current state
func BuildStateView(s *game.State) StateView {
	view := StateView{
		HandID:          s.HandID,
		HandNumber:      s.HandNumber,
		Phase:           s.Phase.String(),
		PlayerCards:     cards.Stack(s.PlayerCards).Strings(),
		Board:           cards.Stack(s.Board).Strings(),
		Pot:             s.Pot,
		PlayerStack:     s.PlayerStack,
		BotStack:        s.BotStack,
		PlayerBet:       s.PlayerBet,
		BotBet:          s.BotBet,
		Button:          s.Button.String(),
		ToAct:           s.ToAct.String(),
		YourTurn:        s.IsPlayerTurn(),
		HandsPlayed:     s.HandsPlayed,
		HandsWon:        s.HandsWon,
		SessionProfitBB: s.SessionProfitBB(),
		SessionOver:     s.Phase == game.SessionEnd,
	}

	if la := s.LastAction; la != nil {
		view.LastAction = la.Seat.String() + " " + la.Action.Description()
	}

	if s.IsPlayerTurn() {
		avail := s.AvailableActions()
		view.Actions = &ActionView{
			CanFold:    avail.CanFold,
			CanCheck:   avail.CanCheck,
			CallAmount: avail.CallAmount,
			MinBet:     avail.MinBet,
			MinRaise:   avail.MinRaise,
			MaxRaise:   avail.MaxRaise,
		}
	}

	if sd := s.Showdown; sd != nil {
		view.BotCards = cards.Stack(s.BotCards).Strings()
		sv := &ShowdownView{
			PlayerHand: sd.PlayerHand.Label,
			BotHand:    sd.BotHand.Label,
			PotWon:     sd.PotWon,
		}
		if sd.Winner != nil {
			sv.Winner = sd.Winner.String()
		}
		view.Showdown = sv
	}

	return view
}
