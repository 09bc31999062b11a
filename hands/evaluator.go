package hands

import (
	"fmt"
	"sort"

	"headsup/cards"
)

// HandRank represents the strength category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the category name
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	}
	return "Unknown"
}

// HandEvaluation represents the evaluation of a poker hand
type HandEvaluation struct {
	Rank    HandRank     // The hand category (pair, flush, etc.)
	Kickers []cards.Rank // Kicker ranks for breaking ties, highest first
	Label   string       // Human-readable description, e.g. "Pair of aces"
}

// Strength returns a normalized strength value in [0, 1], coarse enough
// for heuristic decision policies: category dominates, the top kicker
// contributes at most 0.1.
func (e HandEvaluation) Strength() float64 {
	base := float64(e.Rank) / 8.0
	bonus := 0.0
	if len(e.Kickers) > 0 {
		bonus = (float64(e.Kickers[0]) - 2.0) / 12.0 * 0.1
	}
	if base+bonus > 1.0 {
		return 1.0
	}
	return base + bonus
}

// Compare compares two hand evaluations and returns:
// -1 if a is worse than b
// 0 if the hands are equal
// 1 if a is better than b
// Hands compare first by category, then lexicographically by kickers.
func Compare(a, b HandEvaluation) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}

	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] < b.Kickers[i] {
				return -1
			}
			return 1
		}
	}

	if len(a.Kickers) != len(b.Kickers) {
		if len(a.Kickers) < len(b.Kickers) {
			return -1
		}
		return 1
	}

	return 0
}

// Evaluate determines the best 5-card hand available from the given hole
// cards and board. With fewer than 5 cards total it returns a partial
// estimate based on rank repetition only (straights and flushes cannot be
// detected from an incomplete set). With 5 to 7 cards it evaluates every
// 5-card combination and keeps the best. It never fails: zero cards yield
// a minimal high-card result.
func Evaluate(hole, board []cards.Card) HandEvaluation {
	all := make([]cards.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)

	if len(all) < 5 {
		return evaluatePartial(all)
	}

	best := HandEvaluation{Rank: HighCard}
	first := true
	for _, combo := range combinations(len(all), 5) {
		hand := make([]cards.Card, 5)
		for i, idx := range combo {
			hand[i] = all[idx]
		}

		eval := evaluateFive(hand)
		if first || Compare(eval, best) > 0 {
			best = eval
			first = false
		}
	}

	return best
}

// evaluatePartial estimates hand strength from fewer than 5 cards by
// counting rank repetitions. Kickers are limited to what is observable.
func evaluatePartial(hand []cards.Card) HandEvaluation {
	if len(hand) == 0 {
		return HandEvaluation{
			Rank:  HighCard,
			Label: "No cards",
		}
	}

	rankCounts := make(map[cards.Rank]int)
	for _, card := range hand {
		rankCounts[card.Rank]++
	}

	var pairs []cards.Rank
	var tripRank cards.Rank
	for rank, count := range rankCounts {
		switch count {
		case 4:
			return HandEvaluation{
				Rank:    FourOfAKind,
				Kickers: []cards.Rank{rank},
				Label:   fmt.Sprintf("Four of a kind, %s", rankName(rank)),
			}
		case 3:
			tripRank = rank
		case 2:
			pairs = append(pairs, rank)
		}
	}

	if tripRank != 0 {
		return HandEvaluation{
			Rank:    ThreeOfAKind,
			Kickers: []cards.Rank{tripRank},
			Label:   fmt.Sprintf("Three of a kind, %s", rankName(tripRank)),
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i] > pairs[j] })

	if len(pairs) >= 2 {
		return HandEvaluation{
			Rank:    TwoPair,
			Kickers: []cards.Rank{pairs[0]},
			Label:   "Two pair",
		}
	}

	if len(pairs) == 1 {
		return HandEvaluation{
			Rank:    OnePair,
			Kickers: []cards.Rank{pairs[0]},
			Label:   fmt.Sprintf("Pair of %s", rankName(pairs[0])),
		}
	}

	ranks := sortedRanksDesc(hand)
	return HandEvaluation{
		Rank:    HighCard,
		Kickers: ranks,
		Label:   fmt.Sprintf("%s high", rankName(ranks[0])),
	}
}

// evaluateFive evaluates exactly 5 cards under the full hand-ranking rules
func evaluateFive(hand []cards.Card) HandEvaluation {
	rankCounts := make(map[cards.Rank]int)
	suitCounts := make(map[cards.Suit]int)
	for _, card := range hand {
		rankCounts[card.Rank]++
		suitCounts[card.Suit]++
	}

	flush := false
	for _, count := range suitCounts {
		if count >= 5 {
			flush = true
		}
	}

	// Distinct ranks, highest first
	unique := make([]cards.Rank, 0, len(rankCounts))
	for rank := range rankCounts {
		unique = append(unique, rank)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] > unique[j] })

	straightHigh, isStraight := checkStraight(unique)

	if flush && isStraight {
		return HandEvaluation{
			Rank:    StraightFlush,
			Kickers: []cards.Rank{straightHigh},
			Label:   fmt.Sprintf("%s high straight flush", rankName(straightHigh)),
		}
	}

	for rank, count := range rankCounts {
		if count == 4 {
			return HandEvaluation{
				Rank:    FourOfAKind,
				Kickers: []cards.Rank{rank},
				Label:   fmt.Sprintf("Four of a kind, %s", rankName(rank)),
			}
		}
	}

	var tripRank, pairRank cards.Rank
	var pairs []cards.Rank
	for rank, count := range rankCounts {
		if count == 3 {
			tripRank = rank
		} else if count == 2 {
			pairs = append(pairs, rank)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i] > pairs[j] })
	if len(pairs) > 0 {
		pairRank = pairs[0]
	}

	if tripRank != 0 && pairRank != 0 {
		return HandEvaluation{
			Rank:    FullHouse,
			Kickers: []cards.Rank{tripRank, pairRank},
			Label:   fmt.Sprintf("Full house, %s full of %s", rankName(tripRank), rankName(pairRank)),
		}
	}

	if flush {
		return HandEvaluation{
			Rank:    Flush,
			Kickers: unique,
			Label:   fmt.Sprintf("%s high flush", rankName(unique[0])),
		}
	}

	if isStraight {
		return HandEvaluation{
			Rank:    Straight,
			Kickers: []cards.Rank{straightHigh},
			Label:   fmt.Sprintf("%s high straight", rankName(straightHigh)),
		}
	}

	if tripRank != 0 {
		return HandEvaluation{
			Rank:    ThreeOfAKind,
			Kickers: []cards.Rank{tripRank},
			Label:   fmt.Sprintf("Three of a kind, %s", rankName(tripRank)),
		}
	}

	if len(pairs) >= 2 {
		return HandEvaluation{
			Rank:    TwoPair,
			Kickers: []cards.Rank{pairs[0], pairs[1]},
			Label:   fmt.Sprintf("Two pair, %s and %s", rankName(pairs[0]), rankName(pairs[1])),
		}
	}

	if len(pairs) == 1 {
		return HandEvaluation{
			Rank:    OnePair,
			Kickers: []cards.Rank{pairs[0]},
			Label:   fmt.Sprintf("Pair of %s", rankName(pairs[0])),
		}
	}

	return HandEvaluation{
		Rank:    HighCard,
		Kickers: unique,
		Label:   fmt.Sprintf("%s high", rankName(unique[0])),
	}
}

// checkStraight returns the high card of the straight formed by the given
// distinct ranks (sorted descending), if any. The wheel (A-2-3-4-5) is a
// straight whose high card is Five, strictly below the six-high straight;
// the Ace plays low only here.
func checkStraight(sorted []cards.Rank) (cards.Rank, bool) {
	if len(sorted) < 5 {
		return 0, false
	}

	present := make(map[cards.Rank]bool, len(sorted))
	for _, rank := range sorted {
		present[rank] = true
	}
	if present[cards.Ace] && present[cards.Two] && present[cards.Three] &&
		present[cards.Four] && present[cards.Five] {
		return cards.Five, true
	}

	for i := 0; i+5 <= len(sorted); i++ {
		if sorted[i]-sorted[i+4] == 4 {
			return sorted[i], true
		}
	}

	return 0, false
}

// sortedRanksDesc returns all card ranks sorted highest first
func sortedRanksDesc(hand []cards.Card) []cards.Rank {
	ranks := make([]cards.Rank, len(hand))
	for i, card := range hand {
		ranks[i] = card.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}

// combinations generates all possible combinations of k indices out of n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}

// rankName returns the plural-friendly rank name used in hand labels
func rankName(rank cards.Rank) string {
	switch rank {
	case cards.Two:
		return "twos"
	case cards.Three:
		return "threes"
	case cards.Four:
		return "fours"
	case cards.Five:
		return "fives"
	case cards.Six:
		return "sixes"
	case cards.Seven:
		return "sevens"
	case cards.Eight:
		return "eights"
	case cards.Nine:
		return "nines"
	case cards.Ten:
		return "tens"
	case cards.Jack:
		return "jacks"
	case cards.Queen:
		return "queens"
	case cards.King:
		return "kings"
	case cards.Ace:
		return "aces"
	}
	return "unknown"
}
