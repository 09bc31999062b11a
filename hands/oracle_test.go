package hands

import (
	"math/rand"
	"testing"

	"headsup/cards"

	poker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"
)

// toLibCard converts to the reference library's card encoding.
// The library counts aces as 1, not 14.
func toLibCard(t *testing.T, c cards.Card) poker.Card {
	t.Helper()

	var suit poker.Suit
	switch c.Suit {
	case cards.Clubs:
		suit = poker.Club
	case cards.Diamonds:
		suit = poker.Diamond
	case cards.Hearts:
		suit = poker.Heart
	case cards.Spades:
		suit = poker.Spade
	}

	rank := poker.Rank(c.Rank)
	if c.Rank == cards.Ace {
		rank = poker.Rank(1)
	}

	card, err := poker.MakeCard(suit, rank)
	require.NoError(t, err)
	return card
}

func libScore(t *testing.T, hole, board []cards.Card) int16 {
	t.Helper()

	var seven [7]poker.Card
	for i, c := range append(append([]cards.Card{}, hole...), board...) {
		seven[i] = toLibCard(t, c)
	}
	return poker.Eval7(&seven)
}

// Whenever this evaluator ranks one hand strictly above another, the
// reference evaluator must agree on the direction. Ties are allowed to be
// coarser here since several categories keep only their defining kickers.
func TestEvaluatorAgreesWithReferenceLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		deck := cards.NewDeck(rng)
		playerHole := deck.DealN(2)
		botHole := deck.DealN(2)
		board := deck.DealN(5)

		ours := Compare(Evaluate(playerHole, board), Evaluate(botHole, board))
		if ours == 0 {
			continue
		}

		playerScore := libScore(t, playerHole, board)
		botScore := libScore(t, botHole, board)

		if ours > 0 {
			require.Greater(t, playerScore, botScore,
				"hand %d: %v vs %v on %v", i, playerHole, botHole, board)
		} else {
			require.Less(t, playerScore, botScore,
				"hand %d: %v vs %v on %v", i, playerHole, botHole, board)
		}
	}
}

func TestReferenceLibraryAgreesOnTies(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		deck := cards.NewDeck(rng)
		playerHole := deck.DealN(2)
		botHole := deck.DealN(2)
		board := deck.DealN(5)

		if libScore(t, playerHole, board) != libScore(t, botHole, board) {
			continue
		}

		ours := Compare(Evaluate(playerHole, board), Evaluate(botHole, board))
		require.Zero(t, ours, "hand %d: library tie must also tie here", i)
	}
}
