package game

import (
	"testing"

	"headsup/cards"
	"headsup/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(Config{StartingStackBB: 100, Seed: 1})
}

func mustApply(t *testing.T, s *State, seat Seat, action Action) {
	t.Helper()
	require.NoError(t, s.Apply(seat, action), "%s %s", seat, action.Description())
}

func parseCards(t *testing.T, s string) []cards.Card {
	t.Helper()
	parsed, err := cards.ParseStack(s)
	require.NoError(t, err)
	return parsed
}

func TestHandStartPostsBlinds(t *testing.T) {
	s := newTestState(t)

	// First hand: the player holds the button and posts the small blind
	require.Equal(t, SeatPlayer, s.Button)
	assert.Equal(t, Preflop, s.Phase)
	assert.Equal(t, 1, s.PlayerBet)
	assert.Equal(t, 2, s.BotBet)
	assert.Equal(t, 3, s.Pot)
	assert.Equal(t, 199, s.PlayerStack)
	assert.Equal(t, 198, s.BotStack)
	assert.Equal(t, SeatPlayer, s.ToAct, "button acts first preflop")
	assert.Len(t, s.PlayerCards, 2)
	assert.Len(t, s.BotCards, 2)
	assert.Empty(t, s.Board)
	assert.Equal(t, 400, s.TotalChips())
}

func TestButtonAlternatesEveryHand(t *testing.T) {
	s := newTestState(t)
	require.Equal(t, SeatPlayer, s.Button)

	mustApply(t, s, SeatPlayer, FoldAction())
	require.True(t, s.NextHand())
	assert.Equal(t, SeatBot, s.Button)
	assert.Equal(t, SeatBot, s.ToAct)

	mustApply(t, s, SeatBot, FoldAction())
	require.True(t, s.NextHand())
	assert.Equal(t, SeatPlayer, s.Button)
}

func TestShortStackBlindsAreCapped(t *testing.T) {
	s := newTestState(t)
	mustApply(t, s, SeatPlayer, FoldAction())

	// Next hand the bot has the button; leave the player one chip for the BB
	s.PlayerStack = 1
	s.BotStack = 396
	s.StartNewHand()

	require.Equal(t, SeatBot, s.Button)
	assert.Equal(t, 1, s.BotBet, "small blind")
	assert.Equal(t, 1, s.PlayerBet, "big blind capped at the stack")
	assert.Equal(t, 2, s.Pot)
	assert.Equal(t, 0, s.PlayerStack)
}

func TestFoldEndsHandImmediately(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, FoldAction())

	assert.Equal(t, HandComplete, s.Phase)
	assert.Equal(t, 0, s.Pot)
	assert.Equal(t, 199, s.PlayerStack)
	assert.Equal(t, 201, s.BotStack, "bot collects the blinds")
	assert.Equal(t, 1, s.HandsPlayed)
	assert.Equal(t, 400, s.TotalChips())
}

func TestFoldOnLaterStreetAwardsWholePot(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	require.Equal(t, Flop, s.Phase)

	mustApply(t, s, SeatBot, BetAction(10))
	mustApply(t, s, SeatPlayer, FoldAction())

	assert.Equal(t, HandComplete, s.Phase)
	assert.Equal(t, 202, s.BotStack, "bot bet 12 total and collects the 14-chip pot")
	assert.Equal(t, 400, s.TotalChips())
}

func TestBigBlindOptionPreflop(t *testing.T) {
	s := newTestState(t)

	// Button completes the small blind; bets are equal but the BB still
	// holds the option, so the street must not close yet
	mustApply(t, s, SeatPlayer, CallAction(1))
	require.Equal(t, Preflop, s.Phase)
	require.Equal(t, SeatBot, s.ToAct)

	avail := s.AvailableActions()
	assert.True(t, avail.CanCheck)
	assert.Equal(t, 2, avail.MinBet)

	mustApply(t, s, SeatBot, CheckAction())
	assert.Equal(t, Flop, s.Phase)
	assert.Len(t, s.Board, 3)
}

func TestBigBlindOptionRaise(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, BetAction(6))

	require.Equal(t, Preflop, s.Phase)
	require.Equal(t, SeatPlayer, s.ToAct)
	assert.Equal(t, 4, s.AmountToCall(SeatPlayer))

	mustApply(t, s, SeatPlayer, CallAction(4))
	assert.Equal(t, Flop, s.Phase)
}

func TestCheckCheckAdvancesStreet(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	require.Equal(t, Flop, s.Phase)
	require.Equal(t, SeatBot, s.ToAct, "out-of-position player acts first postflop")

	mustApply(t, s, SeatBot, CheckAction())
	require.Equal(t, Flop, s.Phase, "one check does not close the street")

	mustApply(t, s, SeatPlayer, CheckAction())
	assert.Equal(t, Turn, s.Phase)
	assert.Len(t, s.Board, 4)
}

func TestMinimumRaiseLaw(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	require.Equal(t, Flop, s.Phase)

	// Bet 10: the raise floor becomes 10 + max(10, BB) = 20
	mustApply(t, s, SeatBot, BetAction(10))
	assert.Equal(t, 20, s.AvailableActions().MinRaise)

	// Raise to 30: the floor becomes 30 + max(20, BB) = 50
	mustApply(t, s, SeatPlayer, RaiseAction(30))
	assert.Equal(t, 50, s.AvailableActions().MinRaise)

	// Re-raise to 50; calling closes the street
	mustApply(t, s, SeatBot, RaiseAction(50))
	mustApply(t, s, SeatPlayer, CallAction(20))
	assert.Equal(t, Turn, s.Phase)
	assert.Equal(t, 400, s.TotalChips())
}

func TestRaiseSizeCapturedBeforeStreetHighMutates(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	mustApply(t, s, SeatBot, BetAction(10))

	require.NotNil(t, s.LastAggressor)
	assert.Equal(t, SeatBot, *s.LastAggressor)
	assert.Equal(t, 10, s.LastRaiseSize)

	mustApply(t, s, SeatPlayer, RaiseAction(30))
	assert.Equal(t, SeatPlayer, *s.LastAggressor)
	assert.Equal(t, 20, s.LastRaiseSize, "raise size is 30 minus the previous high of 10")
}

func TestAllInCallDoesNotOverwriteAggressor(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())

	// Bot shoves, player calls all-in for the same total: not a raise
	mustApply(t, s, SeatBot, AllInAction(198))
	require.Equal(t, SeatBot, *s.LastAggressor)

	mustApply(t, s, SeatPlayer, AllInAction(198))
	assert.NotEqual(t, Flop, s.Phase, "street must close once both are all-in")
}

func TestAllInRunoutToShowdown(t *testing.T) {
	s := newTestState(t)

	// Button shoves preflop, BB calls all-in
	mustApply(t, s, SeatPlayer, AllInAction(200))
	require.Equal(t, 198, s.AmountToCall(SeatBot))
	require.Equal(t, 0, s.AvailableActions().CallAmount, "owed equals stack, all-in only")

	mustApply(t, s, SeatBot, AllInAction(200))
	require.Equal(t, Flop, s.Phase)
	require.Len(t, s.Board, 3)

	// Neither player has chips: each street runs out on a single check
	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}

	assert.Equal(t, Showdown, s.Phase)
	assert.Len(t, s.Board, 5)
	require.NotNil(t, s.Showdown)
	assert.Equal(t, 400, s.Showdown.PotWon)
	assert.Equal(t, 400, s.TotalChips())
}

func TestShoveOverAllInBigBlindRefundsAndRunsOut(t *testing.T) {
	s := newTestState(t)
	mustApply(t, s, SeatPlayer, FoldAction())
	require.True(t, s.NextHand())
	mustApply(t, s, SeatBot, FoldAction())

	// Hand three: the player has the button and the big blind puts the
	// bot all-in
	s.PlayerStack = 398
	s.BotStack = 2
	s.StartNewHand()
	require.Equal(t, SeatPlayer, s.Button)
	require.Equal(t, 2, s.BotBet)
	require.Equal(t, 0, s.BotStack)

	// Shoving over an all-in bet ends the round; the uncalled excess comes
	// straight back and the bot is never asked to act broke
	mustApply(t, s, SeatPlayer, AllInAction(398))
	require.Equal(t, Flop, s.Phase)
	assert.Equal(t, 396, s.PlayerStack)
	assert.Equal(t, 4, s.Pot)

	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}

	require.Equal(t, Showdown, s.Phase)
	assert.Equal(t, 4, s.Showdown.PotWon)
	assert.Equal(t, 400, s.TotalChips())
}

func TestShortAllInCallRefundsExcess(t *testing.T) {
	s := newTestState(t)
	mustApply(t, s, SeatPlayer, FoldAction())
	require.True(t, s.NextHand())
	mustApply(t, s, SeatBot, FoldAction())

	s.PlayerStack = 396
	s.BotStack = 4
	s.StartNewHand()
	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	require.Equal(t, Flop, s.Phase)

	// The bot can only cover 2 of the 10-chip bet; the other 8 return
	mustApply(t, s, SeatBot, CheckAction())
	mustApply(t, s, SeatPlayer, BetAction(10))
	mustApply(t, s, SeatBot, AllInAction(2))

	require.Equal(t, Turn, s.Phase)
	assert.Equal(t, 392, s.PlayerStack)
	assert.Equal(t, 8, s.Pot)
	assert.Equal(t, 400, s.TotalChips())

	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}
	require.Equal(t, Showdown, s.Phase)
	assert.Equal(t, 8, s.Showdown.PotWon)
}

func TestAllInSmallBlindRunsTheBoardOut(t *testing.T) {
	s := newTestState(t)
	mustApply(t, s, SeatPlayer, FoldAction())

	// One chip on the button: the small blind is an all-in short of the
	// big blind, so the hand has no decision point preflop
	s.PlayerStack = 399
	s.BotStack = 1
	s.StartNewHand()

	require.Equal(t, SeatBot, s.Button)
	require.Equal(t, Flop, s.Phase)
	assert.Equal(t, 2, s.Pot, "excess big blind returned")
	assert.Equal(t, 398, s.PlayerStack)

	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}
	require.Equal(t, Showdown, s.Phase)
	assert.Equal(t, 2, s.Showdown.PotWon)
	assert.Equal(t, 400, s.TotalChips())
}

func TestCallCheckToShowdown(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}

	assert.Equal(t, Showdown, s.Phase)
	assert.Len(t, s.Board, 5)
	require.NotNil(t, s.Showdown)
	assert.Equal(t, 4, s.Showdown.PotWon)
	assert.Equal(t, 400, s.TotalChips())
	assert.Equal(t, 1, s.HandsPlayed)
}

func TestChipConservationAcrossHands(t *testing.T) {
	s := NewState(Config{StartingStackBB: 100, Seed: 99})
	total := s.TotalChips()

	for hand := 0; hand < 25; hand++ {
		for s.Phase.IsBettingStreet() {
			avail := s.AvailableActions()
			var action Action
			switch {
			case avail.CanCheck:
				action = CheckAction()
			case avail.CallAmount > 0:
				action = CallAction(avail.CallAmount)
			default:
				action = AllInAction(s.currentBet(s.ToAct) + s.stackOf(s.ToAct))
			}
			mustApply(t, s, s.ToAct, action)
			require.Equal(t, total, s.TotalChips(), "hand %d", hand)
		}
		if !s.NextHand() {
			break
		}
		require.Equal(t, total, s.TotalChips())
	}
}

func TestSplitPotOddChipGoesToOutOfPosition(t *testing.T) {
	board := "Ah Kh Qd Jc 9s"

	t.Run("bot out of position", func(t *testing.T) {
		s := &State{
			Phase:       River,
			Button:      SeatPlayer,
			PlayerCards: parseCards(t, "2h 3d"),
			BotCards:    parseCards(t, "2s 3c"),
			Board:       parseCards(t, board),
			Pot:         101,
		}
		s.resolveShowdown()

		require.NotNil(t, s.Showdown)
		assert.Nil(t, s.Showdown.Winner)
		assert.Equal(t, 101, s.Showdown.PotWon)
		assert.Equal(t, 50, s.PlayerStack)
		assert.Equal(t, 51, s.BotStack)
	})

	t.Run("player out of position", func(t *testing.T) {
		s := &State{
			Phase:       River,
			Button:      SeatBot,
			PlayerCards: parseCards(t, "2h 3d"),
			BotCards:    parseCards(t, "2s 3c"),
			Board:       parseCards(t, board),
			Pot:         101,
		}
		s.resolveShowdown()

		assert.Equal(t, 51, s.PlayerStack)
		assert.Equal(t, 50, s.BotStack)
	})
}

func TestShowdownStrictWinnerTakesPot(t *testing.T) {
	s := &State{
		Phase:       River,
		Button:      SeatPlayer,
		PlayerCards: parseCards(t, "As Ad"),
		BotCards:    parseCards(t, "Kh Kd"),
		Board:       parseCards(t, "2h 7c 9d Jh 3s"),
		Pot:         100,
	}
	s.resolveShowdown()

	require.NotNil(t, s.Showdown)
	require.NotNil(t, s.Showdown.Winner)
	assert.Equal(t, SeatPlayer, *s.Showdown.Winner)
	assert.Equal(t, 100, s.PlayerStack)
	assert.Equal(t, 0, s.BotStack)
	assert.Equal(t, 1, s.HandsWon)
	assert.Equal(t, 100, s.BiggestPotWon)
}

func TestIllegalActionsAreRejected(t *testing.T) {
	s := newTestState(t)
	potBefore := s.Pot

	t.Run("out of turn", func(t *testing.T) {
		err := s.Apply(SeatBot, CheckAction())
		require.ErrorIs(t, err, ErrOutOfTurn)
	})

	t.Run("check facing a bet", func(t *testing.T) {
		err := s.Apply(SeatPlayer, CheckAction())
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("call with the wrong amount", func(t *testing.T) {
		err := s.Apply(SeatPlayer, CallAction(5))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("raise below the floor", func(t *testing.T) {
		err := s.Apply(SeatPlayer, RaiseAction(3))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("raise beyond the stack", func(t *testing.T) {
		err := s.Apply(SeatPlayer, RaiseAction(500))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("bet while facing a bet", func(t *testing.T) {
		err := s.Apply(SeatPlayer, BetAction(10))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("all-in with the wrong amount", func(t *testing.T) {
		err := s.Apply(SeatPlayer, AllInAction(150))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	assert.Equal(t, potBefore, s.Pot, "rejected actions must not move chips")
	assert.Equal(t, Preflop, s.Phase)

	t.Run("action after the hand ended", func(t *testing.T) {
		mustApply(t, s, SeatPlayer, FoldAction())
		err := s.Apply(SeatBot, CheckAction())
		require.ErrorIs(t, err, ErrHandOver)
	})
}

func TestPotOdds(t *testing.T) {
	s := newTestState(t)

	// Player owes 1 into a pot of 3: ratio 4.0, equity needed 0.25
	ratio, equity, ok := s.PotOdds()
	require.True(t, ok)
	assert.InDelta(t, 4.0, ratio, 1e-9)
	assert.InDelta(t, 0.25, equity, 1e-9)

	mustApply(t, s, SeatPlayer, CallAction(1))
	_, _, ok = s.PotOdds()
	assert.False(t, ok, "nothing owed")
}

func TestSessionProfitBB(t *testing.T) {
	s := newTestState(t)
	mustApply(t, s, SeatPlayer, FoldAction())
	assert.InDelta(t, -0.5, s.SessionProfitBB(), 1e-9)
}

func TestSessionEndsWhenAStackIsEmpty(t *testing.T) {
	s := newTestState(t)

	mustApply(t, s, SeatPlayer, AllInAction(200))
	mustApply(t, s, SeatBot, AllInAction(200))
	for s.Phase.IsBettingStreet() {
		mustApply(t, s, s.ToAct, CheckAction())
	}
	require.Equal(t, Showdown, s.Phase)

	if s.PlayerStack == 0 || s.BotStack == 0 {
		assert.False(t, s.NextHand())
		assert.Equal(t, SessionEnd, s.Phase)
	} else {
		// Split pot keeps both alive
		assert.True(t, s.NextHand())
	}
}

func TestHandHistoryEvents(t *testing.T) {
	s := newTestState(t)
	store := events.NewInMemoryEventStore()

	var names []string
	s.Subscribe(func(e events.Event) {
		names = append(names, e.EventName())
		require.NoError(t, store.Append(e))
	})

	mustApply(t, s, SeatPlayer, CallAction(1))
	mustApply(t, s, SeatBot, CheckAction())
	handID := s.HandID
	mustApply(t, s, SeatBot, BetAction(10))
	mustApply(t, s, SeatPlayer, FoldAction())

	assert.Equal(t, []string{
		"action-taken",
		"action-taken",
		"community-cards-dealt",
		"action-taken",
		"action-taken",
		"hand-ended",
	}, names)

	stored, err := store.LoadEvents(handID)
	require.NoError(t, err)
	assert.Len(t, stored, 6)

	require.True(t, s.NextHand())
	assert.Equal(t, "hand-started", names[len(names)-1])
}

func TestIsPlayerTurn(t *testing.T) {
	s := newTestState(t)
	assert.True(t, s.IsPlayerTurn())

	mustApply(t, s, SeatPlayer, CallAction(1))
	assert.False(t, s.IsPlayerTurn())

	mustApply(t, s, SeatBot, BetAction(6))
	assert.True(t, s.IsPlayerTurn())

	mustApply(t, s, SeatPlayer, FoldAction())
	assert.False(t, s.IsPlayerTurn())
}
