// Package ui runs the interactive terminal game: rendering, input and the
// glue between the human seat, the bot and the stats store.
package ui

import (
	"fmt"
	"math/rand"

	"headsup/bot"
	"headsup/game"
	"headsup/stats"

	"github.com/charmbracelet/log"
)

// App owns one terminal session: the game, the opposing bot, the stats
// store and the per-hand bookkeeping flags.
type App struct {
	State   *game.State
	Bot     *bot.RuleBased
	Stats   *stats.Store
	Message string

	startingStackBB int
	aggression      float64

	sawFlopThisHand      bool
	recordedHandThisHand bool
	recordedVPIPThisHand bool
	playerRaisedPreflop  bool
	botRaisedPreflop     bool
	threeBetRecorded     bool
	cbetRecorded         bool
	foldToCbetRecorded   bool
	sessionRecorded      bool
}

// NewApp builds a session. Seed zero means a fresh shuffle every run.
func NewApp(stackBB int, aggression float64, seed int64, store *stats.Store, logger *log.Logger) *App {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	return &App{
		State:           game.NewState(game.Config{StartingStackBB: stackBB, Seed: seed}),
		Bot:             bot.NewRuleBased(aggression, rng, logger),
		Stats:           store,
		startingStackBB: stackBB,
		aggression:      aggression,
	}
}

// Initialize lets the bot act when it has the button on the first hand
func (a *App) Initialize() {
	a.advance()
}

// NewSession resets the game for another run at the same settings
func (a *App) NewSession() {
	a.State = game.NewState(game.Config{StartingStackBB: a.startingStackBB})
	a.resetHandFlags()
	a.sessionRecorded = false
	a.Message = "New session started!"
	a.advance()
}

// ApplyPlayerAction records stats for the human action, applies it and
// then advances the game until the human is due again.
func (a *App) ApplyPlayerAction(action game.Action) error {
	if !a.State.IsPlayerTurn() {
		return nil
	}

	if !a.recordedHandThisHand {
		a.Stats.RecordHandStart()
		a.recordedHandThisHand = true
	}

	preflop := len(a.State.Board) == 0
	switch action.Kind {
	case game.Call:
		a.Stats.RecordCall()
	case game.Bet:
		a.Stats.RecordBet()
		if preflop {
			a.Stats.RecordPFR()
		}
	case game.Raise, game.AllIn:
		a.Stats.RecordRaise()
		if preflop {
			a.Stats.RecordPFR()
		}
	}

	// VPIP counts preflop voluntary money once per hand; blinds and
	// checks do not qualify.
	if !a.recordedVPIPThisHand && preflop && action.Kind != game.Fold && action.Kind != game.Check {
		a.Stats.RecordVPIP()
		a.recordedVPIPThisHand = true
	}

	a.recordOpportunities(action, preflop)
	if preflop && action.IsAggressive() {
		a.playerRaisedPreflop = true
	}

	if err := a.State.Apply(game.SeatPlayer, action); err != nil {
		return err
	}
	a.Message = "You " + action.Description()

	a.advance()
	return nil
}

// recordOpportunities tracks the decision points behind the frequency
// stats: re-raise chances facing a preflop raise, continuation-bet chances
// on the flop after raising preflop, and folds to the bot's c-bet. Each
// counts once per hand, at the first qualifying decision.
func (a *App) recordOpportunities(action game.Action, preflop bool) {
	facingBet := a.State.AmountToCall(game.SeatPlayer) > 0
	onFlop := len(a.State.Board) == 3

	botRaised := a.State.LastAggressor != nil && *a.State.LastAggressor == game.SeatBot
	if !a.threeBetRecorded && preflop && facingBet && botRaised {
		a.Stats.RecordThreeBetOpportunity(action.IsAggressive())
		a.threeBetRecorded = true
	}

	if !a.cbetRecorded && onFlop && !facingBet && a.playerRaisedPreflop {
		a.Stats.RecordCbetOpportunity(action.IsAggressive())
		a.cbetRecorded = true
	}

	if !a.foldToCbetRecorded && onFlop && facingBet && a.botRaisedPreflop {
		a.Stats.RecordFoldToCbetOpportunity(action.Kind == game.Fold)
		a.foldToCbetRecorded = true
	}
}

// advance drives the game forward: bot turns, folded hands rolling into
// the next deal, showdowns pausing for the player.
func (a *App) advance() {
	for {
		if !a.sawFlopThisHand && len(a.State.Board) >= 3 {
			a.sawFlopThisHand = true
			a.Stats.RecordSawFlop()
		}

		switch a.State.Phase {
		case game.HandComplete:
			if a.State.NextHand() {
				a.resetHandFlags()
				continue
			}
			a.recordSessionEnd()
			return

		case game.Showdown:
			if sd := a.State.Showdown; sd != nil {
				won := sd.Winner != nil && *sd.Winner == game.SeatPlayer
				a.Stats.RecordShowdown(won)
				if won {
					a.Stats.RecordPotWon(sd.PotWon)
				} else if sd.Winner != nil {
					a.Stats.RecordPotLost(sd.PotWon)
				}
			}
			return

		case game.SessionEnd:
			a.recordSessionEnd()
			return

		default:
			if a.State.ToAct == game.SeatBot {
				action := a.Bot.Decide(a.State)
				if a.State.Phase == game.Preflop && action.IsAggressive() {
					a.botRaisedPreflop = true
				}
				if err := a.State.Apply(game.SeatBot, action); err != nil {
					a.Message = fmt.Sprintf("Bot action rejected: %v", err)
					return
				}
				a.Message = "Bot " + action.Description()
				continue
			}
			return
		}
	}
}

// ContinueAfterShowdown deals the next hand once the player has seen the
// result, or ends the session when a stack is empty.
func (a *App) ContinueAfterShowdown() {
	if a.State.Phase != game.Showdown {
		return
	}
	if a.State.NextHand() {
		a.resetHandFlags()
		a.advance()
		return
	}
	a.recordSessionEnd()
}

// EndSession closes out the session early at the player's request
func (a *App) EndSession() {
	a.recordSessionEnd()
}

func (a *App) resetHandFlags() {
	a.sawFlopThisHand = false
	a.recordedHandThisHand = false
	a.recordedVPIPThisHand = false
	a.playerRaisedPreflop = false
	a.botRaisedPreflop = false
	a.threeBetRecorded = false
	a.cbetRecorded = false
	a.foldToCbetRecorded = false
}

func (a *App) recordSessionEnd() {
	if a.sessionRecorded {
		return
	}
	a.sessionRecorded = true
	a.Stats.RecordSessionEnd()
	// Profit is tracked in chips; the session tally is in big blinds
	a.Stats.RecordProfit(int64(a.State.SessionProfitBB() * float64(game.BigBlind)))
}
