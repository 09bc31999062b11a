package ui

import (
	"fmt"
	"strings"

	"headsup/cards"
	"headsup/game"
	"headsup/stats"

	"github.com/pterm/pterm"
)

// colorCard paints a single card, red suits in red
func colorCard(c cards.Card) string {
	if c.Suit.IsRed() {
		return pterm.LightRed(c.String())
	}
	return pterm.LightWhite(c.String())
}

func colorCards(stack []cards.Card) string {
	if len(stack) == 0 {
		return pterm.Gray("--")
	}
	parts := make([]string, len(stack))
	for i, c := range stack {
		parts[i] = colorCard(c)
	}
	return strings.Join(parts, " ")
}

func seatPanel(name string, stack, bet int, hand string, toAct bool) pterm.Panel {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := name
	if toAct {
		title = pterm.LightYellow(name + " (to act)")
	}
	body := pterm.Sprintf("Stack: %d\nBet: %d\n%s", stack, bet, hand)
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s", body)}
}

func boardPanel(s *game.State) pterm.Panel {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintf("Board: %s\nPot: %d    Street: %s",
		colorCards(s.Board), s.Pot, s.Phase.String())
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|TABLE|")).WithTitleTopCenter().Sprintf("%s", body)}
}

// RenderState draws the whole table for the current hand
func RenderState(a *App) {
	s := a.State

	botHand := pterm.Gray("?? ??")
	if s.Showdown != nil {
		botHand = colorCards(s.BotCards)
	}

	botName := "Bot"
	playerName := "You"
	if s.Button == game.SeatBot {
		botName += " [button]"
	} else {
		playerName += " [button]"
	}

	bot := seatPanel(botName, s.BotStack, s.BotBet, botHand, s.ToAct == game.SeatBot && s.Phase.IsBettingStreet())
	board := boardPanel(s)
	player := seatPanel(playerName, s.PlayerStack, s.PlayerBet, colorCards(s.PlayerCards), s.IsPlayerTurn())

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{bot},
		{board},
		{player},
	}).Render()

	pterm.Printfln("Hand #%d    Session: %+.1f BB", s.HandNumber, s.SessionProfitBB())
	if ratio, equity, ok := s.PotOdds(); ok && s.IsPlayerTurn() {
		pterm.Printfln("Pot odds: %.1f:1 (need %.0f%% equity)", ratio-1, equity*100)
	}
	if a.Message != "" {
		pterm.Println(pterm.LightCyan(a.Message))
	}
}

// RenderShowdown prints the resolved hand
func RenderShowdown(a *App) {
	sd := a.State.Showdown
	if sd == nil {
		return
	}

	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	var result string
	switch {
	case sd.Winner == nil:
		result = pterm.Sprintfln("Split pot: %d chips each way", sd.PotWon/2)
	case *sd.Winner == game.SeatPlayer:
		result = pterm.Sprintfln("%s won %d with %s", pterm.LightCyan("You"), sd.PotWon, sd.PlayerHand.Label)
	default:
		result = pterm.Sprintfln("%s won %d with %s", pterm.LightCyan("Bot"), sd.PotWon, sd.BotHand.Label)
	}
	result += pterm.Sprintfln("Your hand: %s", sd.PlayerHand.Label)
	result += pterm.Sprintfln("Bot hand:  %s", sd.BotHand.Label)

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprintf("%s", result)}},
	}).Render()
}

// RenderStats prints the lifetime statistics table with explanations
func RenderStats(store *stats.Store) {
	s := &store.Stats

	rows := pterm.TableData{
		{"Stat", "Value", "What it means"},
		{"Hands", fmt.Sprintf("%d", s.TotalHands), "Lifetime hands played"},
		{"Sessions", fmt.Sprintf("%d", s.TotalSessions), "Lifetime sessions played"},
		{"VPIP", fmt.Sprintf("%.1f%%", s.VPIP()), statExplanation("VPIP")},
		{"PFR", fmt.Sprintf("%.1f%%", s.PFR()), statExplanation("PFR")},
		{"3Bet", fmt.Sprintf("%.1f%%", s.ThreeBet()), statExplanation("3Bet")},
		{"Cbet", fmt.Sprintf("%.1f%%", s.Cbet()), statExplanation("Cbet")},
		{"FCbet", fmt.Sprintf("%.1f%%", s.FoldToCbet()), statExplanation("FCbet")},
		{"WTSD", fmt.Sprintf("%.1f%%", s.WTSD()), statExplanation("WTSD")},
		{"W$SD", fmt.Sprintf("%.1f%%", s.WSD()), statExplanation("W$SD")},
		{"AF", fmt.Sprintf("%.2f", s.AggressionFactor()), statExplanation("AF")},
		{"Win rate", fmt.Sprintf("%.1f BB/100", s.WinRateBBPer100()), "Profit in big blinds per hundred hands"},
	}

	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func statExplanation(abbrev string) string {
	for _, def := range stats.StatDefinitions {
		if def.Abbrev == abbrev {
			return def.Explanation
		}
	}
	return ""
}

// RenderSessionSummary prints the end-of-session tally
func RenderSessionSummary(a *App) {
	s := a.State
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	body := pterm.Sprintfln("Hands played: %d", s.HandsPlayed)
	body += pterm.Sprintfln("Hands won: %d", s.HandsWon)
	body += pterm.Sprintfln("Profit: %+.1f BB", s.SessionProfitBB())
	body += pterm.Sprintfln("Biggest pot won: %d", s.BiggestPotWon)
	body += pterm.Sprintfln("Biggest pot lost: %d", s.BiggestPotLost)

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: pbox.WithTitle(pterm.LightYellow("|SESSION OVER|")).WithTitleTopCenter().Sprintf("%s", body)}},
	}).Render()
}
