package runtime

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/nous/pkg/domain"
	"github.com/aretw0/nous/pkg/schema"
)

// DefaultSlot is the save slot used when the host does not name one.
const DefaultSlot = "nous-save"

// saveSchema is the structural gate a payload must pass before any of it is
// merged over live defaults. It checks the resource counters and the
// progress collections; nullable card fields stay unchecked here because
// json.Unmarshal types them afterwards.
var saveSchema = schema.Schema{
	"currentScreen":       schema.String(),
	"lives":               schema.Number(),
	"score":               schema.Number(),
	"roundsToWin":         schema.Number(),
	"roundsWon":           schema.Number(),
	"roundNumber":         schema.Number(),
	"roundScore":          schema.Number(),
	"thread":              schema.Number(),
	"difficultyLevel":     schema.Number(),
	"answeredQuestionIds": schema.Map(schema.Bool()),
	"traits":              schema.Map(schema.Number()),
}

// EncodeSave serializes the aggregate for a save slot.
func EncodeSave(s *domain.GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

// DecodeSave validates a payload and merges it over fresh defaults. Fields
// absent from the payload keep their default values; a payload that fails
// validation is rejected wholesale so the caller's live state stays intact.
func DecodeSave(data []byte) (*domain.GameState, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
	}
	if err := schema.Validate(saveSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
	}

	state := domain.NewGameState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
	}

	// Explicit nulls in the payload can strip collection defaults.
	if state.AnsweredQuestionIDs == nil {
		state.AnsweredQuestionIDs = make(map[string]bool)
	}
	if state.CompletedFateCardIDs == nil {
		state.CompletedFateCardIDs = make(map[string]bool)
	}
	if state.RoundAnswerTally == nil {
		state.RoundAnswerTally = domain.NewTally()
	}
	if state.Traits == nil {
		state.Traits = map[domain.Axis]float64{domain.AxisX: 0, domain.AxisY: 0, domain.AxisZ: 0}
	}

	return state, nil
}
