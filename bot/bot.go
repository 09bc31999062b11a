package bot

import (
	"io"
	"math/rand"
	"time"

	"headsup/cards"
	"headsup/game"
	"headsup/hands"

	"github.com/charmbracelet/log"
)

type boardTexture int

const (
	textureDry boardTexture = iota
	textureMedium
	textureWet
)

type betSize int

const (
	sizeSmall betSize = iota
	sizeMedium
	sizeLarge
)

func (s betSize) potFraction() float64 {
	switch s {
	case sizeSmall:
		return 0.30
	case sizeMedium:
		return 0.60
	}
	return 0.85
}

// RuleBased is a heuristic decision policy for the bot seat. It reads the
// game state and legality snapshot and returns exactly one legal action;
// it contains no rules-of-poker logic of its own. The aggression knob in
// [0, 1] shifts every threshold, and the injected rng drives only the
// small decision jitter, so play is reproducible under a fixed seed.
type RuleBased struct {
	aggression float64
	rng        *rand.Rand
	log        *log.Logger
}

// NewRuleBased creates a policy with the given aggression (clamped to
// [0, 1]). A nil rng is seeded from the clock; a nil logger is silenced.
func NewRuleBased(aggression float64, rng *rand.Rand, logger *log.Logger) *RuleBased {
	if aggression < 0 {
		aggression = 0
	}
	if aggression > 1 {
		aggression = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RuleBased{aggression: aggression, rng: rng, log: logger}
}

// Aggression returns the clamped aggression setting
func (b *RuleBased) Aggression() float64 {
	return b.aggression
}

// Decide returns the bot's action for the current state. It must only be
// called when the bot seat is due to act on a betting street.
func (b *RuleBased) Decide(state *game.State) game.Action {
	// Already all-in: the runout closes on a check
	if state.BotStack == 0 {
		return game.CheckAction()
	}

	var action game.Action
	switch state.Phase {
	case game.Preflop:
		action = b.decidePreflop(state)
	case game.Flop, game.Turn:
		action = b.decidePostflop(state)
	case game.River:
		action = b.decideRiver(state)
	default:
		action = game.CheckAction()
	}

	b.log.Debug("bot decision",
		"phase", state.Phase.String(),
		"pot", state.Pot,
		"action", action.Description(),
	)
	return action
}

func (b *RuleBased) decidePreflop(state *game.State) game.Action {
	strength := PreflopStrength(state.BotCards)
	toCall := state.AmountToCall(game.SeatBot)
	avail := state.AvailableActions()
	stack := state.BotStack
	botBet := state.BotBet

	noise := b.rng.Float64()*0.10 - 0.05
	aggressionAdj := (b.aggression - 0.5) * 0.10
	adjusted := strength + aggressionAdj + noise

	if toCall == 0 {
		// BB option: check or raise
		if adjusted > 0.70 && b.aggression > 0.2 {
			return b.preflopRaise(3.0, state)
		}
		if adjusted > 0.55 && b.aggression > 0.3 {
			return b.preflopRaise(2.5, state)
		}
		if adjusted > 0.45 && b.aggression > 0.5 && b.chance(0.25) {
			return b.preflopRaise(2.5, state)
		}
		return game.CheckAction()
	}

	facingRaise := state.LastAggressor != nil

	if !facingRaise {
		// SB open: playable+ raises, marginal limps, trash folds
		if adjusted > 0.50 && b.aggression > 0.15 {
			mult := 2.5
			if adjusted > 0.80 {
				mult = 3.0
			}
			return b.preflopRaise(mult, state)
		}
		if adjusted > 0.35 {
			return b.makeCall(toCall, stack, botBet)
		}
		if b.aggression > 0.7 && b.chance(0.08) {
			return b.preflopRaise(3.0, state)
		}
		return game.FoldAction()
	}

	// Facing a raise
	if adjusted > 0.80 {
		if avail.MinRaise > 0 {
			raiseTo := max(int(float64(state.PlayerBet)*3.0), avail.MinRaise)
			return b.capRaise(raiseTo, stack, botBet)
		}
		return b.makeCall(toCall, stack, botBet)
	}

	if adjusted > 0.65 {
		if avail.MinRaise > 0 && b.aggression > 0.5 && b.chance(0.25) {
			raiseTo := max(int(float64(state.PlayerBet)*2.5), avail.MinRaise)
			if raiseTo < botBet+stack {
				return game.RaiseAction(raiseTo)
			}
		}
		return b.makeCall(toCall, stack, botBet)
	}

	if adjusted > 0.50 {
		return b.makeCall(toCall, stack, botBet)
	}

	if adjusted > 0.35 && toCall <= game.BigBlind*3 {
		return b.makeCall(toCall, stack, botBet)
	}

	if b.aggression > 0.7 && b.chance(0.05) && avail.MinRaise > 0 {
		raiseTo := max(game.BigBlind*7, avail.MinRaise)
		if raiseTo < botBet+stack {
			return game.RaiseAction(raiseTo)
		}
	}

	return game.FoldAction()
}

// preflopRaise opens or three-bets to a blind multiple, falling back to a
// call or all-in when a proper raise is not available
func (b *RuleBased) preflopRaise(bbMultiplier float64, state *game.State) game.Action {
	avail := state.AvailableActions()
	stack := state.BotStack
	botBet := state.BotBet
	maxBet := botBet + stack
	raiseTo := int(game.BigBlind * bbMultiplier)

	if state.AmountToCall(game.SeatBot) == 0 {
		// BB option: raising over the posted blind is an opening bet
		minBet := avail.MinBet
		if minBet == 0 {
			minBet = game.BigBlind
		}
		amount := max(raiseTo, botBet+minBet)
		if amount >= maxBet {
			return game.AllInAction(maxBet)
		}
		return game.BetAction(amount)
	}

	if avail.MinRaise == 0 {
		// Raising is only possible as a shove; keep the cheap route instead
		return b.makeCall(state.AmountToCall(game.SeatBot), stack, botBet)
	}

	amount := max(raiseTo, avail.MinRaise)
	if amount >= maxBet {
		return game.AllInAction(maxBet)
	}
	return game.RaiseAction(amount)
}

func (b *RuleBased) decidePostflop(state *game.State) game.Action {
	made := hands.Evaluate(state.BotCards, state.Board).Strength()
	streetFactor := 1.0
	if state.Phase == game.Turn {
		streetFactor = 0.5
	}
	draws := DetectDraws(state.BotCards, state.Board)
	effective := made + draws.EquityBoost(streetFactor)
	adjusted := b.adjustStrength(effective, state)
	texture := analyzeBoardTexture(state.Board)
	toCall := state.AmountToCall(game.SeatBot)

	if toCall == 0 {
		return b.postflopBetOrCheck(adjusted, texture, state)
	}
	return b.postflopFacingBet(adjusted, toCall, state)
}

func (b *RuleBased) postflopBetOrCheck(adjusted float64, texture boardTexture, state *game.State) game.Action {
	if adjusted > 0.45 {
		return b.makeBet(sizeLarge, state)
	}

	if adjusted > 0.25 {
		size := sizeMedium
		switch texture {
		case textureDry:
			size = sizeSmall
		case textureWet:
			size = sizeLarge
		}
		return b.makeBet(size, state)
	}

	if adjusted > 0.15 && b.aggression > 0.4 {
		return b.makeBet(sizeSmall, state)
	}

	// Occasional bluff with air on favorable textures
	if adjusted < 0.10 && b.aggression > 0.6 && b.chance(0.20) {
		size := sizeMedium
		if texture == textureDry {
			size = sizeSmall
		}
		return b.makeBet(size, state)
	}

	return game.CheckAction()
}

func (b *RuleBased) decideRiver(state *game.State) game.Action {
	made := hands.Evaluate(state.BotCards, state.Board).Strength()
	adjusted := b.adjustStrength(made, state)
	toCall := state.AmountToCall(game.SeatBot)

	if toCall == 0 {
		return b.riverBetOrCheck(adjusted, state)
	}
	return b.postflopFacingBet(adjusted, toCall, state)
}

func (b *RuleBased) riverBetOrCheck(adjusted float64, state *game.State) game.Action {
	if adjusted > 0.45 {
		return b.makeBet(sizeLarge, state)
	}
	if adjusted > 0.20 {
		return b.makeBet(sizeSmall, state)
	}
	if adjusted < 0.08 && b.aggression > 0.6 && b.chance(0.15) {
		return b.makeBet(sizeLarge, state)
	}
	return game.CheckAction()
}

func (b *RuleBased) postflopFacingBet(adjusted float64, toCall int, state *game.State) game.Action {
	avail := state.AvailableActions()
	stack := state.BotStack
	botBet := state.BotBet

	if adjusted > 0.35 {
		if avail.MinRaise > 0 {
			raiseTo := b.calculateRaiseSize(avail.MinRaise, state.Pot, stack, botBet)
			return b.capRaise(raiseTo, stack, botBet)
		}
		return b.makeCall(toCall, stack, botBet)
	}

	if adjusted > 0.20 {
		if avail.MinRaise > 0 && b.aggression > 0.5 && b.chance(0.30) {
			raiseTo := b.calculateRaiseSize(avail.MinRaise, state.Pot, stack, botBet)
			if raiseTo < botBet+stack {
				return game.RaiseAction(raiseTo)
			}
		}
		return b.makeCall(toCall, stack, botBet)
	}

	if adjusted > 0.12 {
		return b.makeCall(toCall, stack, botBet)
	}

	// Occasional bluff-raise with air
	if adjusted < 0.08 && b.aggression > 0.7 && b.chance(0.10) && avail.MinRaise > 0 {
		raiseTo := b.calculateRaiseSize(avail.MinRaise, state.Pot, stack, botBet)
		if raiseTo < botBet+stack {
			return game.RaiseAction(raiseTo)
		}
	}

	return game.FoldAction()
}

// adjustStrength applies position, aggression and jitter to a raw strength
func (b *RuleBased) adjustStrength(effective float64, state *game.State) float64 {
	noise := b.rng.Float64()*0.10 - 0.05
	position := -0.04 // out of position
	if state.Button == game.SeatBot {
		position = 0.06 // in position postflop, acts last
	}
	aggressionAdj := (b.aggression - 0.5) * 0.12
	return effective + position + aggressionAdj + noise
}

func (b *RuleBased) makeBet(size betSize, state *game.State) game.Action {
	avail := state.AvailableActions()
	stack := state.BotStack
	botBet := state.BotBet

	if avail.MinBet == 0 {
		return game.CheckAction()
	}

	amount := int(float64(state.Pot) * size.potFraction())
	amount = max(amount, avail.MinBet)
	amount = min(amount, stack)

	if amount >= stack {
		return game.AllInAction(botBet + stack)
	}
	return game.BetAction(botBet + amount)
}

func (b *RuleBased) makeCall(toCall, stack, botBet int) game.Action {
	if toCall >= stack {
		return game.AllInAction(botBet + stack)
	}
	return game.CallAction(toCall)
}

// capRaise turns a raise-to target into an all-in when it covers the stack
func (b *RuleBased) capRaise(raiseTo, stack, botBet int) game.Action {
	if raiseTo >= botBet+stack {
		return game.AllInAction(botBet + stack)
	}
	return game.RaiseAction(raiseTo)
}

func (b *RuleBased) calculateRaiseSize(minRaiseTo, pot, stack, botBet int) int {
	raiseTo := int(float64(pot)*0.70) + botBet
	raiseTo = max(raiseTo, minRaiseTo)
	return min(raiseTo, botBet+stack)
}

func (b *RuleBased) chance(p float64) bool {
	return b.rng.Float64() < p
}

// analyzeBoardTexture scores how coordinated the board is: suit
// concentration, rank connectivity and pairing all add wetness
func analyzeBoardTexture(board []cards.Card) boardTexture {
	if len(board) == 0 {
		return textureDry
	}

	wetness := 0

	suitCounts := make(map[cards.Suit]int)
	for _, c := range board {
		suitCounts[c.Suit]++
	}
	maxSuit := 0
	for _, count := range suitCounts {
		if count > maxSuit {
			maxSuit = count
		}
	}
	if maxSuit >= 3 {
		wetness += 2 // monotone or near-monotone
	} else if maxSuit == 2 {
		wetness++ // two-tone
	}

	ranks := make([]int, len(board))
	for i, c := range board {
		ranks[i] = int(c.Rank)
	}
	for i := 0; i < len(ranks); i++ {
		for j := i + 1; j < len(ranks); j++ {
			if ranks[j] < ranks[i] {
				ranks[i], ranks[j] = ranks[j], ranks[i]
			}
		}
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] <= 2 {
			wetness++
		}
		if ranks[i] == ranks[i-1] {
			wetness++
		}
	}

	switch {
	case wetness <= 1:
		return textureDry
	case wetness <= 3:
		return textureMedium
	default:
		return textureWet
	}
}
