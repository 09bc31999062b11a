package ui

import (
	"headsup/game"

	"github.com/pterm/pterm"
)

const (
	choiceNextHand   = "Next hand"
	choiceNewSession = "New session"
	choiceQuit       = "Quit"
)

// Run drives the interactive session until the player quits or walks away
// from a finished session. Stats are saved by the caller.
func (a *App) Run() error {
	a.Initialize()

	for {
		RenderState(a)

		switch a.State.Phase {
		case game.Showdown:
			RenderShowdown(a)
			choice, err := pterm.DefaultInteractiveSelect.
				WithDefaultText("Hand over").
				WithOptions([]string{choiceNextHand, labelStats, choiceQuit}).
				Show()
			if err != nil {
				return err
			}
			switch choice {
			case choiceNextHand:
				a.ContinueAfterShowdown()
			case labelStats:
				RenderStats(a.Stats)
			case choiceQuit:
				a.EndSession()
				RenderSessionSummary(a)
				return nil
			}

		case game.SessionEnd:
			RenderSessionSummary(a)
			choice, err := pterm.DefaultInteractiveSelect.
				WithDefaultText("Session over").
				WithOptions([]string{choiceNewSession, labelStats, choiceQuit}).
				Show()
			if err != nil {
				return err
			}
			switch choice {
			case choiceNewSession:
				a.NewSession()
			case labelStats:
				RenderStats(a.Stats)
			case choiceQuit:
				return nil
			}

		default:
			action, result, err := PromptAction(a)
			if err != nil {
				return err
			}
			switch result {
			case promptActed:
				if err := a.ApplyPlayerAction(action); err != nil {
					a.Message = pterm.Sprintf("Rejected: %v", err)
				}
			case promptQuit:
				a.EndSession()
				RenderSessionSummary(a)
				return nil
			}
		}
	}
}
