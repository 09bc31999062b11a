package bot

import (
	"headsup/cards"
)

// DrawInfo summarizes the draws present in a hole-cards-plus-board set
type DrawInfo struct {
	FlushDraw        bool
	OESD             bool // open-ended straight draw
	Gutshot          bool
	Overcards        int
	BackdoorFlush    bool
	BackdoorStraight bool
}

// EquityBoost converts the detected draws into an additive strength bonus.
// The street factor discounts draws as fewer cards remain to come
// (1.0 on the flop, 0.5 on the turn).
func (d DrawInfo) EquityBoost(streetFactor float64) float64 {
	boost := 0.0
	if d.FlushDraw {
		boost += 0.18 * streetFactor
	}
	if d.OESD {
		boost += 0.14 * streetFactor
	} else if d.Gutshot {
		boost += 0.08 * streetFactor
	}
	boost += float64(d.Overcards) * 0.04 * streetFactor
	if d.BackdoorFlush {
		boost += 0.03 * streetFactor
	}
	if d.BackdoorStraight {
		boost += 0.02 * streetFactor
	}
	return boost
}

// DetectDraws finds flush draws, straight draws, overcards and backdoor
// draws. The hole cards must participate for a draw to count; a board-only
// draw is no draw at all.
func DetectDraws(hole, board []cards.Card) DrawInfo {
	if len(board) == 0 {
		return DrawInfo{}
	}

	var info DrawInfo
	detectFlushDraws(hole, board, &info)
	detectStraightDraws(hole, board, &info)
	detectOvercards(hole, board, &info)
	return info
}

func detectFlushDraws(hole, board []cards.Card, info *DrawInfo) {
	for _, suit := range cards.Suits {
		holeCount := 0
		for _, c := range hole {
			if c.Suit == suit {
				holeCount++
			}
		}
		if holeCount == 0 {
			continue
		}

		boardCount := 0
		for _, c := range board {
			if c.Suit == suit {
				boardCount++
			}
		}

		total := holeCount + boardCount
		if total == 4 {
			info.FlushDraw = true
		} else if total == 3 && len(board) == 3 {
			info.BackdoorFlush = true
		}
		// total >= 5 is a made flush, not a draw
	}
}

func detectStraightDraws(hole, board []cards.Card, info *DrawInfo) {
	// Rank values present, with the Ace aliased to 1 for wheel windows
	rankSet := make(map[int]bool)
	for _, c := range hole {
		rankSet[int(c.Rank)] = true
		if c.Rank == cards.Ace {
			rankSet[1] = true
		}
	}
	for _, c := range board {
		rankSet[int(c.Rank)] = true
		if c.Rank == cards.Ace {
			rankSet[1] = true
		}
	}

	holeRanks := make(map[int]bool)
	for _, c := range hole {
		holeRanks[int(c.Rank)] = true
		if c.Rank == cards.Ace {
			holeRanks[1] = true
		}
	}

	// Slide a 5-wide window over all possible straights
	for base := 1; base <= 10; base++ {
		present := 0
		missing := 0
		missingValue := 0
		holeInWindow := false
		for v := base; v < base+5; v++ {
			if rankSet[v] {
				present++
			} else {
				missing++
				missingValue = v
			}
			if holeRanks[v] {
				holeInWindow = true
			}
		}

		if present == 5 {
			// Already a straight, not a draw
			continue
		}
		if !holeInWindow {
			continue
		}

		if present == 4 && missing == 1 {
			if missingValue == base || missingValue == base+4 {
				// The gap sits at an end of the window, but the draw is only
				// open-ended if the opposite end can still grow a straight:
				// J-Q-K-A needs exactly a ten, A-2-3-4 exactly a five.
				openEnded := false
				if missingValue == base {
					openEnded = base+5 <= 14
				} else {
					openEnded = base >= 2
				}
				if openEnded {
					info.OESD = true
				} else {
					info.Gutshot = true
				}
			} else {
				info.Gutshot = true
			}
		}

		if present == 3 && len(board) == 3 {
			info.BackdoorStraight = true
		}
	}
}

func detectOvercards(hole, board []cards.Card, info *DrawInfo) {
	maxBoard := cards.Rank(0)
	for _, c := range board {
		if c.Rank > maxBoard {
			maxBoard = c.Rank
		}
	}
	for _, c := range hole {
		if c.Rank > maxBoard {
			info.Overcards++
		}
	}
}
