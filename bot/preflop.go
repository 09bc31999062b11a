package bot

import (
	"headsup/cards"
)

// Tier buckets a two-card starting hand for heads-up play, weakest first
type Tier int

const (
	TierTrash Tier = iota
	TierMarginal
	TierPlayable
	TierStrong
	TierPremium
)

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierPlayable:
		return "playable"
	case TierMarginal:
		return "marginal"
	}
	return "trash"
}

// BaseStrength returns the tier's base win-rate estimate
func (t Tier) BaseStrength() float64 {
	switch t {
	case TierPremium:
		return 0.90
	case TierStrong:
		return 0.75
	case TierPlayable:
		return 0.60
	case TierMarginal:
		return 0.45
	}
	return 0.25
}

// Compact tier codes used in the lookup tables below
const (
	pr uint8 = 1 // premium
	st uint8 = 2 // strong
	pl uint8 = 3 // playable
	mg uint8 = 4 // marginal
	tr uint8 = 5 // trash
)

// Pair tiers indexed by rank-2: 22, 33, ... QQ, KK, AA
var pairTier = [13]uint8{mg, mg, mg, mg, pl, pl, pl, pl, st, st, pr, pr, pr}

// Suited hand tiers: suitedTier[lowIdx][highIdx], used only where high > low.
// Indices: 0=2, 1=3, 2=4, 3=5, 4=6, 5=7, 6=8, 7=9, 8=T, 9=J, 10=Q, 11=K, 12=A
var suitedTier = [13][13]uint8{
	//  2   3   4   5   6   7   8   9   T   J   Q   K   A
	{0, tr, tr, tr, tr, tr, tr, tr, tr, tr, tr, mg, pl}, // low=2
	{0, 0, mg, tr, tr, tr, tr, tr, tr, tr, tr, mg, pl}, // low=3
	{0, 0, 0, mg, mg, tr, tr, tr, tr, tr, tr, mg, pl}, // low=4
	{0, 0, 0, 0, mg, mg, mg, tr, tr, tr, tr, mg, pl}, // low=5
	{0, 0, 0, 0, 0, mg, pl, mg, tr, tr, tr, mg, pl}, // low=6
	{0, 0, 0, 0, 0, 0, pl, pl, mg, tr, tr, mg, pl}, // low=7
	{0, 0, 0, 0, 0, 0, 0, pl, pl, mg, mg, mg, pl}, // low=8
	{0, 0, 0, 0, 0, 0, 0, 0, pl, pl, mg, pl, pl}, // low=9
	{0, 0, 0, 0, 0, 0, 0, 0, 0, pl, pl, pl, st}, // low=T
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, pl, st, st}, // low=J
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, st, st}, // low=Q
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, pr}, // low=K
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // low=A
}

// Offsuit hand tiers: offsuitTier[highIdx][lowIdx], used only where high > low.
var offsuitTier = [13][13]uint8{
	//  2   3   4   5   6   7   8   9   T   J   Q   K   A
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // high=2
	{tr, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // high=3
	{tr, mg, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // high=4
	{tr, tr, mg, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // high=5
	{tr, tr, tr, mg, 0, 0, 0, 0, 0, 0, 0, 0, 0}, // high=6
	{tr, tr, tr, tr, mg, 0, 0, 0, 0, 0, 0, 0, 0}, // high=7
	{tr, tr, tr, tr, tr, mg, 0, 0, 0, 0, 0, 0, 0}, // high=8
	{tr, tr, tr, tr, tr, tr, mg, 0, 0, 0, 0, 0, 0}, // high=9
	{tr, tr, tr, tr, tr, tr, tr, mg, 0, 0, 0, 0, 0}, // high=T
	{tr, tr, tr, tr, tr, tr, tr, tr, mg, 0, 0, 0, 0}, // high=J
	{tr, tr, tr, tr, tr, tr, tr, tr, mg, mg, 0, 0, 0}, // high=Q
	{tr, tr, tr, tr, tr, tr, tr, tr, mg, mg, pl, 0, 0}, // high=K
	{tr, tr, tr, mg, mg, mg, mg, mg, pl, pl, st, pr, 0}, // high=A
}

func tierFromCode(code uint8) Tier {
	switch code {
	case pr:
		return TierPremium
	case st:
		return TierStrong
	case pl:
		return TierPlayable
	case mg:
		return TierMarginal
	}
	return TierTrash
}

func rankIndex(rank cards.Rank) int {
	return int(rank) - 2
}

// ClassifyPreflop buckets a two-card starting hand into its tier.
// It panics unless given exactly 2 cards.
func ClassifyPreflop(hole []cards.Card) Tier {
	if len(hole) != 2 {
		panic("ClassifyPreflop requires exactly 2 cards")
	}

	r0, r1 := hole[0].Rank, hole[1].Rank
	suited := hole[0].Suit == hole[1].Suit

	if r0 == r1 {
		return tierFromCode(pairTier[rankIndex(r0)])
	}

	high, low := r0, r1
	if r1 > r0 {
		high, low = r1, r0
	}

	if suited {
		return tierFromCode(suitedTier[rankIndex(low)][rankIndex(high)])
	}
	return tierFromCode(offsuitTier[rankIndex(high)][rankIndex(low)])
}

// PreflopStrength estimates starting hand strength in [0, 1]: the tier's
// base plus a small kicker bonus (up to +0.05) for card ranks within the tier.
func PreflopStrength(hole []cards.Card) float64 {
	tier := ClassifyPreflop(hole)
	base := tier.BaseStrength()

	high, low := hole[0].Rank, hole[1].Rank
	if low > high {
		high, low = low, high
	}
	bonus := float64(rankIndex(high))/12.0*0.04 + float64(rankIndex(low))/12.0*0.01

	if base+bonus > 1.0 {
		return 1.0
	}
	return base + bonus
}
