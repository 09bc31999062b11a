package ui

import (
	"fmt"
	"strconv"

	"headsup/game"

	"github.com/pterm/pterm"
)

// Fixed action labels; bet and raise carry amounts chosen afterwards
const (
	labelFold  = "Fold"
	labelCheck = "Check"
	labelBet   = "Bet..."
	labelRaise = "Raise..."
	labelStats = "Show stats"
	labelQuit  = "Quit session"
)

// actionOptions builds the selectable menu from the legality snapshot
func actionOptions(s *game.State) ([]string, game.AvailableActions) {
	avail := s.AvailableActions()
	var options []string

	if avail.CanCheck {
		options = append(options, labelCheck)
	}
	if avail.CallAmount > 0 {
		options = append(options, fmt.Sprintf("Call %d", avail.CallAmount))
	}
	if avail.MinBet > 0 {
		options = append(options, labelBet)
	}
	if avail.MinRaise > 0 {
		options = append(options, labelRaise)
	}
	if stack := s.PlayerStack; stack > 0 {
		options = append(options, fmt.Sprintf("All-in %d", s.PlayerBet+stack))
	}
	if avail.CanFold {
		options = append(options, labelFold)
	}
	options = append(options, labelStats, labelQuit)

	return options, avail
}

// promptResult says what the menu interaction produced
type promptResult int

const (
	promptActed promptResult = iota
	promptShowedStats
	promptQuit
)

// PromptAction asks the player for their next move
func PromptAction(a *App) (game.Action, promptResult, error) {
	options, avail := actionOptions(a.State)

	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your move").
		WithOptions(options).
		Show()
	if err != nil {
		return game.Action{}, promptQuit, err
	}

	maxBet := a.State.PlayerBet + a.State.PlayerStack

	switch choice {
	case labelFold:
		return game.FoldAction(), promptActed, nil
	case labelCheck:
		return game.CheckAction(), promptActed, nil
	case labelBet:
		amount, err := promptAmount("Bet to", a.State.PlayerBet+avail.MinBet, maxBet)
		if err != nil {
			return game.Action{}, promptQuit, err
		}
		if amount >= maxBet {
			return game.AllInAction(maxBet), promptActed, nil
		}
		return game.BetAction(amount), promptActed, nil
	case labelRaise:
		amount, err := promptAmount("Raise to", avail.MinRaise, maxBet)
		if err != nil {
			return game.Action{}, promptQuit, err
		}
		if amount >= maxBet {
			return game.AllInAction(maxBet), promptActed, nil
		}
		return game.RaiseAction(amount), promptActed, nil
	case labelStats:
		RenderStats(a.Stats)
		return game.Action{}, promptShowedStats, nil
	case labelQuit:
		return game.Action{}, promptQuit, nil
	}

	if amount, ok := parseAmountSuffix(choice, "Call "); ok {
		return game.CallAction(amount), promptActed, nil
	}
	if amount, ok := parseAmountSuffix(choice, "All-in "); ok {
		return game.AllInAction(amount), promptActed, nil
	}
	return game.Action{}, promptShowedStats, fmt.Errorf("unrecognized choice %q", choice)
}

func parseAmountSuffix(choice, prefix string) (int, bool) {
	if len(choice) <= len(prefix) || choice[:len(prefix)] != prefix {
		return 0, false
	}
	amount, err := strconv.Atoi(choice[len(prefix):])
	if err != nil {
		return 0, false
	}
	return amount, true
}

func promptAmount(label string, minimum, maximum int) (int, error) {
	for {
		raw, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("%s (%d-%d)", label, minimum, maximum)).
			WithDefaultValue(strconv.Itoa(minimum)).
			Show()
		if err != nil {
			return 0, err
		}

		amount, err := strconv.Atoi(raw)
		if err != nil || amount < minimum || amount > maximum {
			pterm.Println(pterm.LightRed("Enter a number between the shown bounds"))
			continue
		}
		return amount, nil
	}
}
