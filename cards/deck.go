package cards

import "math/rand"

// Deck is a shuffled standard deck dealt from the front. Cards are never
// reused within a hand; build a fresh deck per hand instead of reshuffling.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck creates a standard 52-card deck shuffled with the given source.
// Injecting the source keeps dealing reproducible under a fixed seed.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// Deal removes and returns the top card. The second return is false
// once the deck is exhausted.
func (d *Deck) Deal() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// DealN deals up to n cards, fewer if the deck runs out
func (d *Deck) DealN(n int) []Card {
	dealt := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		dealt = append(dealt, card)
	}
	return dealt
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
