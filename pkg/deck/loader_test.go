package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nous/pkg/domain"
)

func TestDefaultQuestions(t *testing.T) {
	questions, err := DefaultQuestions()
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	perTier := make(map[domain.Tier]int)
	for _, q := range questions {
		perTier[q.DifficultyTier]++
		assert.Len(t, q.Answers, 3, "question %s", q.ID)
	}
	assert.Equal(t, 4, perTier[domain.Tier1])
	assert.Equal(t, 4, perTier[domain.Tier2])
	assert.Equal(t, 4, perTier[domain.Tier3])
}

func TestDefaultFateCards(t *testing.T) {
	cards, err := DefaultFateCards()
	require.NoError(t, err)
	require.NotEmpty(t, cards)

	for _, card := range cards {
		assert.Regexp(t, "^DYN", card.ID)
		assert.LessOrEqual(t, len(card.Choices), domain.MaxChoices)
	}
}

func TestDefaultFateCards_SilentTallyTable(t *testing.T) {
	cards, err := DefaultFateCards()
	require.NoError(t, err)

	var silent *domain.FateCard
	for i := range cards {
		if cards[i].ID == domain.CardSilentTally {
			silent = &cards[i]
		}
	}
	require.NotNil(t, silent)

	eff := silent.Choices[0].Effect
	require.NotNil(t, eff)
	assert.Equal(t, domain.EffectTallyTable, eff.Kind)
	assert.Equal(t, "C", eff.Target)
	// YAML integer keys survive decoding into the reward table.
	reward, ok := eff.Table[0]
	require.True(t, ok)
	assert.Equal(t, domain.RewardDoubleRoundScore, reward.Type)
}

func TestParseQuestions_AcceptsJSON(t *testing.T) {
	data := []byte(`[{
		"questionId": "J1",
		"text": "json question",
		"difficultyTier": "tier2",
		"answers": [
			{"text": "a", "class": "typical"},
			{"text": "b", "class": "revelatory"},
			{"text": "c", "class": "wrong"}
		]
	}]`)

	questions, err := ParseQuestions(data)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, domain.Tier2, questions[0].DifficultyTier)
}

func TestParseQuestions_Rejections(t *testing.T) {
	valid := `
- questionId: Q1
  text: ok
  difficultyTier: tier1
  answers:
    - {text: a, class: typical}
    - {text: b, class: revelatory}
    - {text: c, class: wrong}
`

	cases := map[string]string{
		"duplicate id": valid + `
- questionId: Q1
  text: dup
  difficultyTier: tier1
  answers:
    - {text: a, class: typical}
    - {text: b, class: revelatory}
    - {text: c, class: wrong}
`,
		"unknown class": `
- questionId: Q2
  text: bad class
  difficultyTier: tier1
  answers:
    - {text: a, class: heroic}
    - {text: b, class: revelatory}
    - {text: c, class: wrong}
`,
		"two answers": `
- questionId: Q3
  text: short
  difficultyTier: tier1
  answers:
    - {text: a, class: typical}
    - {text: b, class: wrong}
`,
		"bad tier": `
- questionId: Q4
  text: bad tier
  difficultyTier: tier9
  answers:
    - {text: a, class: typical}
    - {text: b, class: revelatory}
    - {text: c, class: wrong}
`,
		"missing text": `
- questionId: Q5
  difficultyTier: tier1
  answers:
    - {text: a, class: typical}
    - {text: b, class: revelatory}
    - {text: c, class: wrong}
`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuestions([]byte(input))
			assert.Error(t, err)
		})
	}

	_, err := ParseQuestions([]byte(valid))
	assert.NoError(t, err)
}

func TestParseFateCards_Rejections(t *testing.T) {
	cases := map[string]string{
		"too many choices": `
- cardId: C1
  title: t
  text: x
  choices:
    - {label: a}
    - {label: b}
    - {label: c}
    - {label: d}
`,
		"missing label": `
- cardId: C2
  title: t
  text: x
  choices:
    - effect: {type: SCORE, value: 1}
`,
		"duplicate id": `
- {cardId: C3, title: t, text: x, choices: []}
- {cardId: C3, title: t, text: x, choices: []}
`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFateCards([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestFallbackQuestions(t *testing.T) {
	questions := FallbackQuestions()
	require.NotEmpty(t, questions)
	assert.Len(t, questions[0].Answers, 3)
}
