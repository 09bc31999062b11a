package cards

import (
	"fmt"
	"unicode/utf8"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

// IsRed reports whether the suit renders red
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, ordered Two(2) through Ace(14)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank shorthand ("2".."9", "10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
	}
	return "?"
}

// Suits lists the four suits in deck order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks lists the thirteen ranks in ascending order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the string representation of a card, e.g. "A♠"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// ParseCard creates a card from a string representation
// e.g., "10♠" or "10s" or "Th" -> the ten of the given suit
func ParseCard(s string) (Card, error) {
	// Suit symbols are multi-byte, so split off the last rune, not byte
	last, size := utf8.DecodeLastRuneInString(s)
	rest := s[:len(s)-size]
	if last == utf8.RuneError || rest == "" {
		return Card{}, fmt.Errorf("invalid card shorthand: %s", s)
	}

	var suit Suit
	switch last {
	case '♠', 's', 'S':
		suit = Spades
	case '♥', 'h', 'H':
		suit = Hearts
	case '♦', 'd', 'D':
		suit = Diamonds
	case '♣', 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %c", last)
	}

	var rank Rank
	switch rest {
	case "A", "a":
		rank = Ace
	case "K", "k":
		rank = King
	case "Q", "q":
		rank = Queen
	case "J", "j":
		rank = Jack
	case "10", "T", "t":
		rank = Ten
	case "9":
		rank = Nine
	case "8":
		rank = Eight
	case "7":
		rank = Seven
	case "6":
		rank = Six
	case "5":
		rank = Five
	case "4":
		rank = Four
	case "3":
		rank = Three
	case "2":
		rank = Two
	default:
		return Card{}, fmt.Errorf("invalid card rank: %s", rest)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard is ParseCard that panics on bad input, for fixtures
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
