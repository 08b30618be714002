package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nous/pkg/domain"
)

func TestSaveRoundtrip(t *testing.T) {
	g := newTestGame(t, testDeck(4), nil)
	g.InitializeGame(3)
	g.StartNewRound()
	answerClass(t, g, domain.ClassTypical)
	g.State().Traits[domain.AxisY] = 2.5

	data, err := EncodeSave(g.State())
	require.NoError(t, err)

	restored, err := DecodeSave(data)
	require.NoError(t, err)

	assert.Equal(t, g.State().Lives, restored.Lives)
	assert.Equal(t, g.State().Thread, restored.Thread)
	assert.Equal(t, g.State().RoundScore, restored.RoundScore)
	assert.Equal(t, g.State().AnsweredQuestionIDs, restored.AnsweredQuestionIDs)
	assert.InDelta(t, 2.5, restored.Traits[domain.AxisY], 1e-9)
}

func TestDecodeSave_RejectsMalformedJSON(t *testing.T) {
	_, err := DecodeSave([]byte(`{not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidSave)
}

func TestDecodeSave_RejectsMissingFields(t *testing.T) {
	_, err := DecodeSave([]byte(`{"bad": true}`))
	assert.ErrorIs(t, err, domain.ErrInvalidSave)
}

func TestDecodeSave_RejectsWrongTypes(t *testing.T) {
	g := newTestGame(t, testDeck(4), nil)
	g.InitializeGame(2)
	data, err := EncodeSave(g.State())
	require.NoError(t, err)

	// Same shape, one field retyped.
	corrupted := strings.Replace(string(data), `"lives":3`, `"lives":"three"`, 1)
	require.NotEqual(t, string(data), corrupted)

	_, err = DecodeSave([]byte(corrupted))
	assert.ErrorIs(t, err, domain.ErrInvalidSave)
}

func TestDecodeSave_AbsentFieldsKeepDefaults(t *testing.T) {
	payload := []byte(`{
		"currentScreen": "lobby",
		"lives": 2,
		"score": 10,
		"roundsToWin": 3,
		"roundsWon": 1,
		"roundNumber": 2,
		"roundScore": 0,
		"thread": 3,
		"difficultyLevel": 2,
		"answeredQuestionIds": {"Q1": true},
		"traits": {"x": 1}
	}`)

	state, err := DecodeSave(payload)
	require.NoError(t, err)

	assert.Equal(t, 2, state.Lives)
	assert.Equal(t, domain.Tier2, state.DifficultyLevel)
	// Not in the payload: defaults survive the merge.
	assert.Equal(t, domain.DefaultCategory, state.CurrentCategory)
	assert.NotNil(t, state.CompletedFateCardIDs)
	assert.Equal(t, domain.NewTally(), state.RoundAnswerTally)
}
