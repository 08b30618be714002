package domain

// EffectKind tags the effect union. Values match the deck-file wire form;
// unknown kinds are tolerated and simply defer to round end as no-ops.
type EffectKind string

const (
	EffectImmediateScore  EffectKind = "IMMEDIATE_SCORE"
	EffectScore           EffectKind = "SCORE"
	EffectAddCardToDeck   EffectKind = "ADD_CARD_TO_DECK"
	EffectApplyWager      EffectKind = "APPLY_WAGER"
	EffectTallyTable      EffectKind = "TALLY_TABLE"
	EffectRoundPrediction EffectKind = "ROUND_PREDICTION"
	EffectRoundModifier   EffectKind = "ROUND_MODIFIER"
	EffectTallyAnswers    EffectKind = "TALLY_ANSWERS"
	EffectPowerUp         EffectKind = "POWER_UP"
)

// RewardKind tags what a reward pays out.
type RewardKind string

const (
	RewardScore            RewardKind = "SCORE"
	RewardDoubleRoundScore RewardKind = "DOUBLE_ROUND_SCORE"
)

// Reward is a payout attached to a deferred effect.
type Reward struct {
	Type  RewardKind `json:"type" yaml:"type" mapstructure:"type"`
	Value int        `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
}

// PowerUp is a single-use ability flag.
type PowerUp string

// PowerRemoveWrongAnswer strips one wrong answer from the next question.
const PowerRemoveWrongAnswer PowerUp = "REMOVE_WRONG_ANSWER"

// Effect is the tagged union carried by a fate card choice. Only the fields
// relevant to Kind are populated.
type Effect struct {
	Kind       EffectKind     `json:"type" yaml:"type" mapstructure:"type"`
	Value      int            `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	Card       *FateCard      `json:"card,omitempty" yaml:"card,omitempty" mapstructure:"card"`
	Target     string         `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
	Table      map[int]Reward `json:"table,omitempty" yaml:"table,omitempty" mapstructure:"table"`
	Prediction string         `json:"prediction,omitempty" yaml:"prediction,omitempty" mapstructure:"prediction"`
	Reward     *Reward        `json:"reward,omitempty" yaml:"reward,omitempty" mapstructure:"reward"`
	Power      PowerUp        `json:"power,omitempty" yaml:"power,omitempty" mapstructure:"power"`
	FlavorText string         `json:"flavorText,omitempty" yaml:"flavorText,omitempty" mapstructure:"flavorText"`

	// Runtime-only bookkeeping for queued round effects.
	CardTitle string `json:"cardTitle,omitempty" yaml:"-" mapstructure:"-"`
	Count     int    `json:"count,omitempty" yaml:"-" mapstructure:"-"`
}

// Choice is one option on a fate card.
type Choice struct {
	Label  string  `json:"label" yaml:"label" mapstructure:"label"`
	Effect *Effect `json:"effect,omitempty" yaml:"effect,omitempty" mapstructure:"effect"`
}

// MaxChoices is the fixed action surface a card can offer.
const MaxChoices = 3

// FateCard is a random event card with up to three choices.
type FateCard struct {
	ID      string   `json:"cardId" yaml:"cardId" mapstructure:"cardId"`
	Title   string   `json:"title" yaml:"title" mapstructure:"title"`
	Text    string   `json:"text" yaml:"text" mapstructure:"text"`
	Choices []Choice `json:"choices" yaml:"choices" mapstructure:"choices"`
}

// Cards with round-long micro-rules keyed by ID.
const (
	CardWhispersOfDoubt = "DYN001" // wrong answers fray one extra thread
	CardSuddenClarity   = "DYN002" // revelatory answers pay one extra point
	CardSharedBurden    = "DYN003"
	CardSilentTally     = "DYN004"
	CardScholarsBoon    = "DYN005" // round starts with one extra thread
)
