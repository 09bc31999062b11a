// Package stats tracks lifetime player statistics across sessions and
// persists them as JSON in the user's config directory.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PlayerStats accumulates lifetime counters. The percentage views are
// derived on demand so the stored file stays raw counts.
type PlayerStats struct {
	TotalHands    uint64 `json:"total_hands"`
	TotalSessions uint64 `json:"total_sessions"`

	VPIPHands             uint64 `json:"vpip_hands"`
	PFRHands              uint64 `json:"pfr_hands"`
	ThreeBetOpportunities uint64 `json:"three_bet_opportunities"`
	ThreeBetHands         uint64 `json:"three_bet_hands"`

	CbetOpportunities       uint64 `json:"cbet_opportunities"`
	CbetHands               uint64 `json:"cbet_hands"`
	FoldToCbetOpportunities uint64 `json:"fold_to_cbet_opportunities"`
	FoldToCbetHands         uint64 `json:"fold_to_cbet_hands"`

	WTSDOpportunities uint64 `json:"wtsd_opportunities"`
	WTSDHands         uint64 `json:"wtsd_hands"`
	WSDHands          uint64 `json:"wsd_hands"`

	Bets   uint64 `json:"bets"`
	Raises uint64 `json:"raises"`
	Calls  uint64 `json:"calls"`

	TotalProfitChips int64 `json:"total_profit_chips"`
	BiggestPotWon    int   `json:"biggest_pot_won"`
	BiggestPotLost   int   `json:"biggest_pot_lost"`
}

func percentage(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// VPIP is the percentage of hands with money voluntarily put in preflop
// (calls or raises, blinds excluded).
func (s *PlayerStats) VPIP() float64 {
	return percentage(s.VPIPHands, s.TotalHands)
}

// PFR is the percentage of hands raised preflop.
func (s *PlayerStats) PFR() float64 {
	return percentage(s.PFRHands, s.TotalHands)
}

// ThreeBet is the percentage of re-raises when facing a preflop raise.
func (s *PlayerStats) ThreeBet() float64 {
	return percentage(s.ThreeBetHands, s.ThreeBetOpportunities)
}

// Cbet is the percentage of flops bet after raising preflop.
func (s *PlayerStats) Cbet() float64 {
	return percentage(s.CbetHands, s.CbetOpportunities)
}

// FoldToCbet is the percentage of folds when facing a continuation bet.
func (s *PlayerStats) FoldToCbet() float64 {
	return percentage(s.FoldToCbetHands, s.FoldToCbetOpportunities)
}

// WTSD is the percentage of flops seen that reached showdown.
func (s *PlayerStats) WTSD() float64 {
	return percentage(s.WTSDHands, s.WTSDOpportunities)
}

// WSD is the percentage of showdowns won.
func (s *PlayerStats) WSD() float64 {
	return percentage(s.WSDHands, s.WTSDHands)
}

// AggressionFactor is (bets + raises) / calls, capped at 99.9 when there
// are no calls so the display stays finite.
func (s *PlayerStats) AggressionFactor() float64 {
	if s.Calls == 0 {
		if s.Bets+s.Raises > 0 {
			return 99.9
		}
		return 0
	}
	return float64(s.Bets+s.Raises) / float64(s.Calls)
}

// WinRateBBPer100 is the profit in big blinds per hundred hands.
func (s *PlayerStats) WinRateBBPer100() float64 {
	if s.TotalHands == 0 {
		return 0
	}
	return float64(s.TotalProfitChips) / 2.0 / float64(s.TotalHands) * 100
}

// StatDefinition explains one tracked statistic for display
type StatDefinition struct {
	Abbrev      string
	Name        string
	Explanation string
}

var StatDefinitions = []StatDefinition{
	{"VPIP", "Voluntarily Put $ In Pot", "% of hands where you voluntarily put money in preflop (calls or raises, not blinds)"},
	{"PFR", "Pre-Flop Raise", "% of hands where you raised preflop. Should be close to VPIP for tight-aggressive play"},
	{"3Bet", "3-Bet Frequency", "% of times you re-raised when facing a raise. 7-10% is typical"},
	{"Cbet", "Continuation Bet", "% of times you bet the flop after raising preflop. 60-70% is standard"},
	{"FCbet", "Fold to C-bet", "% of times you folded to a continuation bet. >50% is exploitable"},
	{"WTSD", "Went to Showdown", "% of hands that went to showdown when you saw the flop. 25-32% is healthy"},
	{"W$SD", "Won $ at Showdown", "% of showdowns you won. >50% means you're showing down strong hands"},
	{"AF", "Aggression Factor", "Ratio of (bets + raises) / calls. Higher = more aggressive. 2-3 is typical"},
}

const (
	appName   = "terminal-poker"
	statsFile = "stats.json"
)

// Store holds the live stats and the file they round-trip through
type Store struct {
	Stats PlayerStats
	path  string
}

// Load reads the stats file at the default location, starting fresh when
// it is missing or unreadable.
func Load() (*Store, error) {
	return LoadFrom(defaultPath())
}

// LoadFrom reads the stats file at path. A missing file is not an error;
// a corrupt one is reported alongside a fresh store so the caller can
// decide whether to overwrite it.
func LoadFrom(path string) (*Store, error) {
	store := &Store{path: path}

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return store, err
	}

	if err := json.Unmarshal(contents, &store.Stats); err != nil {
		store.Stats = PlayerStats{}
		return store, err
	}
	return store, nil
}

// Save writes the stats back to disk, creating parent directories as needed
func (st *Store) Save() error {
	if dir := filepath.Dir(st.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(&st.Stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o644)
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName, statsFile)
}

func (st *Store) RecordHandStart() {
	st.Stats.TotalHands++
}

func (st *Store) RecordVPIP() {
	st.Stats.VPIPHands++
}

func (st *Store) RecordPFR() {
	st.Stats.PFRHands++
}

func (st *Store) RecordThreeBetOpportunity(reraised bool) {
	st.Stats.ThreeBetOpportunities++
	if reraised {
		st.Stats.ThreeBetHands++
	}
}

func (st *Store) RecordCbetOpportunity(bet bool) {
	st.Stats.CbetOpportunities++
	if bet {
		st.Stats.CbetHands++
	}
}

func (st *Store) RecordFoldToCbetOpportunity(folded bool) {
	st.Stats.FoldToCbetOpportunities++
	if folded {
		st.Stats.FoldToCbetHands++
	}
}

func (st *Store) RecordBet() {
	st.Stats.Bets++
}

func (st *Store) RecordRaise() {
	st.Stats.Raises++
}

func (st *Store) RecordCall() {
	st.Stats.Calls++
}

func (st *Store) RecordSawFlop() {
	st.Stats.WTSDOpportunities++
}

func (st *Store) RecordShowdown(won bool) {
	st.Stats.WTSDHands++
	if won {
		st.Stats.WSDHands++
	}
}

func (st *Store) RecordProfit(amount int64) {
	st.Stats.TotalProfitChips += amount
}

func (st *Store) RecordPotWon(pot int) {
	if pot > st.Stats.BiggestPotWon {
		st.Stats.BiggestPotWon = pot
	}
}

func (st *Store) RecordPotLost(pot int) {
	if pot > st.Stats.BiggestPotLost {
		st.Stats.BiggestPotLost = pot
	}
}

func (st *Store) RecordSessionEnd() {
	st.Stats.TotalSessions++
}
