package runtime

import (
	"math/rand"
	"strings"

	"github.com/aretw0/nous/pkg/domain"
)

// FateEngine draws cards from the fate deck and accumulates their effects.
// Immediate score and deferred effects are held until ResolveRound folds them
// against the round's answer tally; the deck itself is mutable and may grow
// at runtime (ADD_CARD_TO_DECK).
type FateEngine struct {
	deck           []domain.FateCard
	current        *domain.FateCard
	storedEffects  []domain.Effect
	immediateScore int
	rng            *rand.Rand
}

// NewFateEngine builds an engine over a private copy of the deck, scoped to
// one game session.
func NewFateEngine(deck []domain.FateCard, rng *rand.Rand) *FateEngine {
	return &FateEngine{
		deck: append([]domain.FateCard(nil), deck...),
		rng:  rng,
	}
}

// Draw picks a uniformly random card and holds it as the current card.
// Returns nil when the deck is empty.
func (e *FateEngine) Draw() *domain.FateCard {
	if len(e.deck) == 0 {
		return nil
	}
	card := e.deck[e.rng.Intn(len(e.deck))]
	e.current = &card
	return &card
}

// DrawEligible picks a uniformly random card whose ID is not in the completed
// set. Returns nil when no eligible card remains. The drawn card is not held
// as current; the caller owns its lifecycle.
func (e *FateEngine) DrawEligible(completed map[string]bool) *domain.FateCard {
	var eligible []domain.FateCard
	for _, card := range e.deck {
		if !completed[card.ID] {
			eligible = append(eligible, card)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	card := eligible[e.rng.Intn(len(eligible))]
	return &card
}

// AddCard grows the live deck.
func (e *FateEngine) AddCard(card domain.FateCard) {
	e.deck = append(e.deck, card)
}

// Current returns the drawn card awaiting a choice, if any.
func (e *FateEngine) Current() *domain.FateCard {
	return e.current
}

// DeckSize reports the live deck size (it can grow mid-game).
func (e *FateEngine) DeckSize() int {
	return len(e.deck)
}

// ButtonLabels returns exactly three labels, padding missing choices with
// empty strings. This is the fixed 3-slot action surface the host renders.
func (e *FateEngine) ButtonLabels() [domain.MaxChoices]string {
	var labels [domain.MaxChoices]string
	if e.current == nil {
		return labels
	}
	for i, choice := range e.current.Choices {
		if i >= domain.MaxChoices {
			break
		}
		labels[i] = choice.Label
	}
	return labels
}

// Choose applies the choice at index against the engine's accumulators and
// returns the effect's flavor text, if any. A missing index clears the
// current card and returns empty; the card is consumed unconditionally, even
// when its effect is a no-op.
func (e *FateEngine) Choose(index int) string {
	if e.current == nil {
		return ""
	}
	card := e.current
	e.current = nil

	if index < 0 || index >= len(card.Choices) {
		return ""
	}
	eff := card.Choices[index].Effect
	if eff == nil {
		return ""
	}

	switch eff.Kind {
	case domain.EffectImmediateScore:
		e.immediateScore += eff.Value
	case domain.EffectAddCardToDeck:
		if eff.Card != nil {
			e.deck = append(e.deck, *eff.Card)
		}
	default:
		e.storedEffects = append(e.storedEffects, *eff)
	}

	return eff.FlavorText
}

// ResolveRound folds the stored effects against the round's answer tally and
// clears them (single-shot per round). The won flag is accepted but unused:
// effects fire identically regardless of round outcome.
func (e *FateEngine) ResolveRound(tally domain.Tally, won bool) domain.RoundResolution {
	_ = won

	res := domain.RoundResolution{
		ScoreDelta:           e.immediateScore,
		RoundScoreMultiplier: 1,
	}

	for _, eff := range e.storedEffects {
		switch eff.Kind {
		case domain.EffectApplyWager:
			// Target encodes a letter, e.g. "answer-c" -> C.
			letter := wagerLetter(eff.Target)
			count := tally[letter]
			if eff.Reward != nil && eff.Reward.Type == domain.RewardScore {
				res.RoundScoreDelta += eff.Reward.Value * count
			}
		case domain.EffectTallyTable:
			count := tally[eff.Target]
			reward, ok := eff.Table[count]
			if !ok {
				continue
			}
			switch reward.Type {
			case domain.RewardDoubleRoundScore:
				// Multipliers compose across matching effects.
				res.RoundScoreMultiplier *= 2
			case domain.RewardScore:
				res.ScoreDelta += reward.Value
			}
		}
	}

	e.storedEffects = nil
	e.immediateScore = 0
	return res
}

func wagerLetter(target string) string {
	parts := strings.Split(target, "-")
	return strings.ToUpper(parts[len(parts)-1])
}
