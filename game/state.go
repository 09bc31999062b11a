package game

import (
	"fmt"
	"math/rand"
	"time"

	"headsup/cards"
	"headsup/events"
	"headsup/hands"

	"github.com/google/uuid"
)

// Blind sizes are fixed for the whole session
const (
	BigBlind   = 2
	SmallBlind = 1
)

// Seat identifies one of the two players
type Seat int

const (
	SeatPlayer Seat = iota
	SeatBot
)

// Opponent returns the other seat
func (s Seat) Opponent() Seat {
	if s == SeatPlayer {
		return SeatBot
	}
	return SeatPlayer
}

// String returns the seat name
func (s Seat) String() string {
	if s == SeatPlayer {
		return "player"
	}
	return "bot"
}

// Phase is the current stage of a hand or session
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
	HandComplete
	SessionEnd
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case HandComplete:
		return "hand complete"
	case SessionEnd:
		return "session end"
	}
	return "unknown"
}

// IsBettingStreet reports whether actions may be applied in this phase
func (p Phase) IsBettingStreet() bool {
	return p == Preflop || p == Flop || p == Turn || p == River
}

// TakenAction records who acted and what they did
type TakenAction struct {
	Seat   Seat
	Action Action
}

// ShowdownResult holds the outcome of a hand that reached showdown.
// Winner is nil when the pot was split. It is replaced at the next hand.
type ShowdownResult struct {
	Winner     *Seat
	PlayerHand hands.HandEvaluation
	BotHand    hands.HandEvaluation
	PotWon     int
}

// Config configures a new session
type Config struct {
	StartingStackBB int   // per-player starting stack, in big blinds
	Seed            int64 // deck shuffle seed; 0 seeds from the clock
}

// State is the single mutable aggregate owning all hand and session chip
// state. It is created once per session and reset in place at every new
// hand; session counters survive resets. It performs no I/O and holds no
// locks: a concurrent host must serialize every call that touches it.
type State struct {
	HandID string
	Phase  Phase

	PlayerCards []cards.Card
	BotCards    []cards.Card
	Board       []cards.Card

	Pot         int
	PlayerStack int
	BotStack    int
	PlayerBet   int
	BotBet      int

	ToAct         Seat
	Button        Seat
	LastAggressor *Seat
	LastRaiseSize int
	LastAction    *TakenAction
	Showdown      *ShowdownResult

	HandNumber     int
	StartingStack  int
	HandsPlayed    int
	HandsWon       int
	BiggestPotWon  int
	BiggestPotLost int

	deck              *cards.Deck
	rng               *rand.Rand
	actionsThisStreet int
	listeners         []func(events.Event)
}

// NewState creates a session with both stacks at the configured depth and
// deals the first hand. The seed drives only the deck shuffle; everything
// else in the engine is deterministic.
func NewState(cfg Config) *State {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	startingStack := cfg.StartingStackBB * BigBlind
	state := &State{
		Phase:         Preflop,
		PlayerStack:   startingStack,
		BotStack:      startingStack,
		Button:        SeatBot,
		LastRaiseSize: BigBlind,
		StartingStack: startingStack,
		rng:           rand.New(rand.NewSource(seed)),
	}
	state.StartNewHand()
	return state
}

// Subscribe registers a listener for hand history events. Listeners run
// synchronously inside the engine call that produced the event.
func (s *State) Subscribe(fn func(events.Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) publish(e events.Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// StartNewHand resets per-hand state, alternates the button, builds a fresh
// shuffled deck, deals hole cards and posts the blinds. The button posts the
// small blind and acts first preflop; blinds are capped at short stacks.
func (s *State) StartNewHand() {
	s.HandNumber++
	s.HandID = uuid.NewString()
	s.Button = s.Button.Opponent()
	s.Phase = Preflop
	s.deck = cards.NewDeck(s.rng)
	s.PlayerCards = s.deck.DealN(2)
	s.BotCards = s.deck.DealN(2)
	s.Board = s.Board[:0]
	s.Pot = 0
	s.PlayerBet = 0
	s.BotBet = 0
	s.LastAggressor = nil
	s.LastRaiseSize = BigBlind
	s.LastAction = nil
	s.Showdown = nil
	s.actionsThisStreet = 0

	if s.Button == SeatPlayer {
		sb := min(SmallBlind, s.PlayerStack)
		bb := min(BigBlind, s.BotStack)
		s.PlayerStack -= sb
		s.PlayerBet = sb
		s.BotStack -= bb
		s.BotBet = bb
		s.Pot = sb + bb
	} else {
		sb := min(SmallBlind, s.BotStack)
		bb := min(BigBlind, s.PlayerStack)
		s.BotStack -= sb
		s.BotBet = sb
		s.PlayerStack -= bb
		s.PlayerBet = bb
		s.Pot = sb + bb
	}
	s.ToAct = s.Button

	s.publish(HandStarted{
		HandID:     s.HandID,
		HandNumber: s.HandNumber,
		Button:     s.Button,
	})

	// A small blind can leave the button all-in owing part of the big
	// blind; with no action possible the board simply runs out
	if s.stackOf(s.ToAct) == 0 && s.AmountToCall(s.ToAct) > 0 {
		s.advancePhase()
	}
}

// Apply validates and applies one action for the given seat. It rejects
// out-of-turn and illegal actions with an error and leaves the state
// untouched; on success it moves chips, tracks aggression and advances the
// street or ends the hand when the betting round completes.
func (s *State) Apply(seat Seat, action Action) error {
	if !s.Phase.IsBettingStreet() {
		return fmt.Errorf("%w: phase is %s", ErrHandOver, s.Phase)
	}
	if seat != s.ToAct {
		return fmt.Errorf("%w: %s acted but %s is due", ErrOutOfTurn, seat, s.ToAct)
	}
	if err := s.checkLegal(action); err != nil {
		return err
	}

	s.LastAction = &TakenAction{Seat: seat, Action: action}
	s.actionsThisStreet++
	s.publish(ActionTaken{
		HandID: s.HandID,
		Phase:  s.Phase,
		Seat:   seat,
		Action: action,
	})

	switch action.Kind {
	case Fold:
		s.settleFold(seat)
		return nil
	case Check:
		// No chip movement
	case Call:
		s.addChips(seat, action.Amount)
	case Bet, Raise:
		added := action.Amount - s.currentBet(seat)
		oldMax := s.maxBet() // capture before mutation
		s.addChips(seat, added)
		aggressor := seat
		s.LastAggressor = &aggressor
		s.LastRaiseSize = action.Amount - oldMax
	case AllIn:
		added := action.Amount - s.currentBet(seat)
		oldMax := s.maxBet() // capture before mutation
		s.addChips(seat, added)
		// An all-in call must not overwrite aggressor tracking
		if action.Amount > oldMax {
			aggressor := seat
			s.LastAggressor = &aggressor
			s.LastRaiseSize = action.Amount - oldMax
		}
	}

	if s.bettingRoundComplete() {
		s.advancePhase()
	} else {
		s.ToAct = seat.Opponent()
	}
	return nil
}

// checkLegal validates an action against the current legality snapshot
func (s *State) checkLegal(action Action) error {
	avail := s.AvailableActions()
	curBet := s.currentBet(s.ToAct)
	stack := s.stackOf(s.ToAct)

	switch action.Kind {
	case Fold:
		return nil
	case Check:
		if !avail.CanCheck {
			return fmt.Errorf("%w: cannot check facing a bet", ErrIllegalAction)
		}
	case Call:
		if avail.CallAmount == 0 {
			return fmt.Errorf("%w: calling is not available", ErrIllegalAction)
		}
		if action.Amount != avail.CallAmount {
			return fmt.Errorf("%w: call must be exactly %d, got %d",
				ErrIllegalAction, avail.CallAmount, action.Amount)
		}
	case Bet:
		if avail.MinBet == 0 {
			return fmt.Errorf("%w: betting is not available", ErrIllegalAction)
		}
		added := action.Amount - curBet
		if added < avail.MinBet {
			return fmt.Errorf("%w: bet must put in at least %d, got %d",
				ErrIllegalAction, avail.MinBet, added)
		}
		if added > stack {
			return fmt.Errorf("%w: bet to %d exceeds stack", ErrIllegalAction, action.Amount)
		}
	case Raise:
		if avail.MinRaise == 0 {
			return fmt.Errorf("%w: raising is not available", ErrIllegalAction)
		}
		if action.Amount < avail.MinRaise {
			return fmt.Errorf("%w: raise must be to at least %d, got %d",
				ErrIllegalAction, avail.MinRaise, action.Amount)
		}
		if action.Amount-curBet > stack {
			return fmt.Errorf("%w: raise to %d exceeds stack", ErrIllegalAction, action.Amount)
		}
	case AllIn:
		if stack == 0 {
			return fmt.Errorf("%w: no chips left", ErrIllegalAction)
		}
		if action.Amount != curBet+stack {
			return fmt.Errorf("%w: all-in must be for %d, got %d",
				ErrIllegalAction, curBet+stack, action.Amount)
		}
	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, action.Kind)
	}
	return nil
}

// addChips moves chips from a seat's stack into its street bet and the pot,
// clamped to the stack so a player can never be charged more than they have
func (s *State) addChips(seat Seat, amount int) {
	if seat == SeatPlayer {
		actual := min(amount, s.PlayerStack)
		s.PlayerStack -= actual
		s.PlayerBet += actual
		s.Pot += actual
	} else {
		actual := min(amount, s.BotStack)
		s.BotStack -= actual
		s.BotBet += actual
		s.Pot += actual
	}
}

func (s *State) currentBet(seat Seat) int {
	if seat == SeatPlayer {
		return s.PlayerBet
	}
	return s.BotBet
}

func (s *State) stackOf(seat Seat) int {
	if seat == SeatPlayer {
		return s.PlayerStack
	}
	return s.BotStack
}

func (s *State) maxBet() int {
	return max(s.PlayerBet, s.BotBet)
}

// settleFold awards the whole pot to the non-folder and ends the hand
func (s *State) settleFold(folder Seat) {
	winner := folder.Opponent()
	pot := s.Pot

	if winner == SeatPlayer {
		s.PlayerStack += pot
		s.HandsWon++
		if pot > s.BiggestPotWon {
			s.BiggestPotWon = pot
		}
	} else {
		s.BotStack += pot
		if pot > s.BiggestPotLost {
			s.BiggestPotLost = pot
		}
	}

	s.Pot = 0
	s.HandsPlayed++
	s.Phase = HandComplete

	s.publish(HandEnded{
		HandID: s.HandID,
		Winner: &winner,
		Pot:    pot,
		Reason: HandEndedFold,
	})
}

// bettingRoundComplete decides whether the current street is finished
func (s *State) bettingRoundComplete() bool {
	// All-in situations: nothing further is possible once bets are equal,
	// or once the shorter side sits all-in behind an unmatched bet. The
	// uncalled excess is returned when the street settles.
	if s.PlayerStack == 0 || s.BotStack == 0 {
		if s.PlayerBet == s.BotBet {
			return true
		}
		if s.PlayerBet < s.BotBet {
			return s.PlayerStack == 0
		}
		return s.BotStack == 0
	}

	if s.PlayerBet != s.BotBet {
		return false
	}

	// Preflop with no raise: the big blind keeps the option and the round
	// only closes once that player has explicitly checked
	if s.Phase == Preflop && s.LastAggressor == nil {
		bb := s.Button.Opponent()
		return s.LastAction != nil &&
			s.LastAction.Seat == bb &&
			s.LastAction.Action.Kind == Check
	}

	// No aggressor and equal bets: both players must have acted (check-check)
	if s.LastAggressor == nil {
		return s.actionsThisStreet >= 2
	}

	// With an aggressor and equal bets, the last action was a call
	return true
}

// advancePhase resets street bets, deals the next community cards and hands
// the action to the out-of-position player; on the river it resolves the
// showdown instead
func (s *State) advancePhase() {
	s.returnUncalledBet()
	s.PlayerBet = 0
	s.BotBet = 0
	s.LastAggressor = nil
	s.actionsThisStreet = 0

	switch s.Phase {
	case Preflop:
		s.Phase = Flop
		s.dealCommunity(3)
	case Flop:
		s.Phase = Turn
		s.dealCommunity(1)
	case Turn:
		s.Phase = River
		s.dealCommunity(1)
	case River:
		s.resolveShowdown()
		return
	default:
		return
	}

	s.ToAct = s.Button.Opponent()
}

// returnUncalledBet moves the unmatched portion of the street high back to
// the bettor's stack. Bets can only end a street unequal when the shorter
// side is all-in, so the excess was never contested.
func (s *State) returnUncalledBet() {
	switch {
	case s.PlayerBet > s.BotBet:
		excess := s.PlayerBet - s.BotBet
		s.PlayerBet -= excess
		s.PlayerStack += excess
		s.Pot -= excess
	case s.BotBet > s.PlayerBet:
		excess := s.BotBet - s.PlayerBet
		s.BotBet -= excess
		s.BotStack += excess
		s.Pot -= excess
	}
}

func (s *State) dealCommunity(n int) {
	dealt := s.deck.DealN(n)
	s.Board = append(s.Board, dealt...)
	s.publish(CommunityCardsDealt{
		HandID: s.HandID,
		Phase:  s.Phase,
		Cards:  dealt,
	})
}

// resolveShowdown evaluates both hands and settles the pot. A strict winner
// takes it all; a tie splits it, with the odd chip going to the
// out-of-position (non-button) player.
func (s *State) resolveShowdown() {
	playerEval := hands.Evaluate(s.PlayerCards, s.Board)
	botEval := hands.Evaluate(s.BotCards, s.Board)

	var winner *Seat
	switch hands.Compare(playerEval, botEval) {
	case 1:
		seat := SeatPlayer
		winner = &seat
	case -1:
		seat := SeatBot
		winner = &seat
	}

	pot := s.Pot
	switch {
	case winner != nil && *winner == SeatPlayer:
		s.PlayerStack += pot
		s.HandsWon++
		if pot > s.BiggestPotWon {
			s.BiggestPotWon = pot
		}
	case winner != nil && *winner == SeatBot:
		s.BotStack += pot
		if pot > s.BiggestPotLost {
			s.BiggestPotLost = pot
		}
	default:
		half := pot / 2
		remainder := pot % 2
		if s.Button == SeatPlayer {
			s.PlayerStack += half
			s.BotStack += half + remainder
		} else {
			s.PlayerStack += half + remainder
			s.BotStack += half
		}
	}

	s.Showdown = &ShowdownResult{
		Winner:     winner,
		PlayerHand: playerEval,
		BotHand:    botEval,
		PotWon:     pot,
	}

	s.Pot = 0
	s.HandsPlayed++
	s.Phase = Showdown

	s.publish(HandEnded{
		HandID: s.HandID,
		Winner: winner,
		Pot:    pot,
		Reason: HandEndedShowdown,
	})
}

// NextHand starts the next hand after a fold or showdown. It returns false
// and moves to SessionEnd when either player is out of chips.
func (s *State) NextHand() bool {
	if s.Phase != Showdown && s.Phase != HandComplete {
		return false
	}
	if s.PlayerStack == 0 || s.BotStack == 0 {
		s.Phase = SessionEnd
		return false
	}
	s.StartNewHand()
	return true
}

// AmountToCall returns how many chips the seat owes to match the street high
func (s *State) AmountToCall(seat Seat) int {
	owed := s.maxBet() - s.currentBet(seat)
	if owed < 0 {
		return 0
	}
	return owed
}

// AvailableActions derives the legality snapshot for the acting player.
// The raise-to floor is the street high plus the greater of the big blind
// and the previous raise size on this street.
func (s *State) AvailableActions() AvailableActions {
	stack := s.stackOf(s.ToAct)
	toCall := s.AmountToCall(s.ToAct)
	minRaiseTo := s.maxBet() + max(s.LastRaiseSize, BigBlind)

	return NewAvailableActions(toCall, minRaiseTo, stack, BigBlind)
}

// PotOdds returns (pot odds ratio, equity needed) for the player seat, or
// false when nothing is owed
func (s *State) PotOdds() (float64, float64, bool) {
	toCall := s.AmountToCall(SeatPlayer)
	if toCall == 0 {
		return 0, 0, false
	}

	potAfterCall := float64(s.Pot + toCall)
	return potAfterCall / float64(toCall), float64(toCall) / potAfterCall, true
}

// IsPlayerTurn reports whether the human seat is due to act
func (s *State) IsPlayerTurn() bool {
	return s.ToAct == SeatPlayer && s.Phase.IsBettingStreet()
}

// SessionProfitBB returns the player's session profit in big blinds
func (s *State) SessionProfitBB() float64 {
	return (float64(s.PlayerStack) - float64(s.StartingStack)) / float64(BigBlind)
}

// TotalChips returns all chips in play; constant for the whole session
func (s *State) TotalChips() int {
	return s.PlayerStack + s.BotStack + s.Pot
}
