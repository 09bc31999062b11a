package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"headsup/bot"
	"headsup/events"
	"headsup/game"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"
)

// Command names accepted over the wire
const (
	CmdStartSession = "start-session"
	CmdTakeAction   = "take-action"
	CmdNextHand     = "next-hand"
	CmdGetState     = "get-state"
	CmdGetHistory   = "get-history"
)

// Envelope names pushed to the client
const (
	MsgSessionStarted = "session-started"
	MsgState          = "state"
	MsgHandHistory    = "hand-history"
	MsgError          = "error"
)

// Envelope wraps every message with its name for client consumption
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// StartSessionCommand opens a new heads-up session against the bot
type StartSessionCommand struct {
	StackBB    int     `json:"stackBb"`
	Aggression float64 `json:"aggression"`
	Seed       int64   `json:"seed"`
}

// TakeActionCommand plays one action for the human seat
type TakeActionCommand struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

// GetHistoryCommand fetches a hand's recorded events; an empty hand id
// means the hand currently in play
type GetHistoryCommand struct {
	HandID string `json:"handId"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sessionStartedPayload struct {
	SessionID string `json:"sessionId"`
}

// Session owns one client's game. All commands for a connection are
// handled on its read loop, so the engine needs no locking.
type Session struct {
	ID      string
	state   *game.State
	bot     *bot.RuleBased
	history events.EventStore
	send    chan []byte
	log     *log.Logger
}

// NewSession creates an idle session; the game starts on the first
// start-session command.
func NewSession(logger *log.Logger) *Session {
	return &Session{
		ID:   uuid.NewString(),
		send: make(chan []byte, 256),
		log:  logger,
	}
}

// HandleCommand decodes and executes one wire command
func (s *Session) HandleCommand(message []byte) error {
	var base struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &base); err != nil {
		s.sendError("malformed command")
		return err
	}

	switch base.Name {
	case CmdStartSession:
		var cmd StartSessionCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.sendError("malformed start-session command")
			return err
		}
		return s.handleStartSession(cmd)

	case CmdTakeAction:
		var cmd TakeActionCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.sendError("malformed take-action command")
			return err
		}
		return s.handleTakeAction(cmd)

	case CmdNextHand:
		return s.handleNextHand()

	case CmdGetState:
		return s.requireStarted(func() error {
			s.sendState()
			return nil
		})

	case CmdGetHistory:
		var cmd GetHistoryCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.sendError("malformed get-history command")
			return err
		}
		return s.handleGetHistory(cmd)

	default:
		s.log.Warn("unknown command", "dump", litter.Sdump(base))
		s.sendError("unknown command: " + base.Name)
		return errors.New("unknown command type")
	}
}

func (s *Session) handleStartSession(cmd StartSessionCommand) error {
	if cmd.StackBB <= 0 {
		cmd.StackBB = 100
	}
	if cmd.Aggression == 0 {
		cmd.Aggression = 0.5
	}

	s.state = game.NewState(game.Config{StartingStackBB: cmd.StackBB, Seed: cmd.Seed})

	store := events.NewInMemoryEventStore()
	s.history = store
	s.state.Subscribe(func(e events.Event) {
		if err := store.Append(e); err != nil {
			s.log.Error("failed to record hand history", "event", e.EventName(), "err", err)
		}
	})
	// The first hand is dealt before the subscription exists
	_ = store.Append(game.HandStarted{
		HandID:     s.state.HandID,
		HandNumber: s.state.HandNumber,
		Button:     s.state.Button,
	})

	var rng *rand.Rand
	if cmd.Seed != 0 {
		rng = rand.New(rand.NewSource(cmd.Seed))
	}
	s.bot = bot.NewRuleBased(cmd.Aggression, rng, s.log)

	s.log.Info("session started", "session", s.ID, "stackBb", cmd.StackBB, "aggression", cmd.Aggression)
	s.push(MsgSessionStarted, sessionStartedPayload{SessionID: s.ID})

	s.runBot()
	s.sendState()
	return nil
}

func (s *Session) handleTakeAction(cmd TakeActionCommand) error {
	return s.requireStarted(func() error {
		action, err := parseAction(cmd)
		if err != nil {
			s.sendError(err.Error())
			return err
		}

		if err := s.state.Apply(game.SeatPlayer, action); err != nil {
			s.sendError(err.Error())
			return err
		}

		s.runBot()
		s.sendState()
		return nil
	})
}

func (s *Session) handleNextHand() error {
	return s.requireStarted(func() error {
		if !s.state.NextHand() {
			s.sendState() // session over; the view carries the final tally
			return nil
		}
		s.runBot()
		s.sendState()
		return nil
	})
}

func (s *Session) handleGetHistory(cmd GetHistoryCommand) error {
	return s.requireStarted(func() error {
		handID := cmd.HandID
		if handID == "" {
			handID = s.state.HandID
		}
		recorded, err := s.history.LoadEvents(handID)
		if err != nil {
			s.sendError(err.Error())
			return err
		}
		s.push(MsgHandHistory, BuildHandHistoryView(handID, recorded))
		return nil
	})
}

// runBot lets the bot act until the human is due or the hand is settled
func (s *Session) runBot() {
	for s.state.Phase.IsBettingStreet() && s.state.ToAct == game.SeatBot {
		action := s.bot.Decide(s.state)
		if err := s.state.Apply(game.SeatBot, action); err != nil {
			s.log.Error("bot action rejected", "action", action.Description(), "err", err)
			return
		}
	}
}

func (s *Session) requireStarted(fn func() error) error {
	if s.state == nil {
		s.sendError("no session in progress")
		return errors.New("no session in progress")
	}
	return fn()
}

func (s *Session) sendState() {
	s.push(MsgState, BuildStateView(s.state))
}

func (s *Session) sendError(message string) {
	s.push(MsgError, errorPayload{Message: message})
}

func (s *Session) push(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to marshal payload", "name", name, "err", err)
		return
	}
	envelope, err := json.Marshal(Envelope{Name: name, Payload: data})
	if err != nil {
		s.log.Error("failed to marshal envelope", "name", name, "err", err)
		return
	}

	select {
	case s.send <- envelope:
	default:
		s.log.Warn("send buffer full, dropping message", "session", s.ID, "name", name)
	}
}

func parseAction(cmd TakeActionCommand) (game.Action, error) {
	switch cmd.Kind {
	case "fold":
		return game.FoldAction(), nil
	case "check":
		return game.CheckAction(), nil
	case "call":
		return game.CallAction(cmd.Amount), nil
	case "bet":
		return game.BetAction(cmd.Amount), nil
	case "raise":
		return game.RaiseAction(cmd.Amount), nil
	case "all-in":
		return game.AllInAction(cmd.Amount), nil
	default:
		return game.Action{}, fmt.Errorf("unknown action kind %q", cmd.Kind)
	}
}
