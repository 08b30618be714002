package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTrait(t *testing.T) {
	assert.Equal(t, TraitMin, ClampTrait(-100))
	assert.Equal(t, TraitMax, ClampTrait(100))
	assert.Equal(t, 3.5, ClampTrait(3.5))
}

func TestClassScores(t *testing.T) {
	assert.Equal(t, ClassScore{Points: 2, Thread: 0}, ClassScores[ClassTypical])
	assert.Equal(t, ClassScore{Points: 1, Thread: 1}, ClassScores[ClassRevelatory])
	assert.Equal(t, ClassScore{Points: 0, Thread: -1}, ClassScores[ClassWrong])
}

func TestTraitDelta(t *testing.T) {
	t.Run("nil loading uses base", func(t *testing.T) {
		assert.Equal(t, 3.0, TraitDelta(nil, ClassRevelatory, AxisY))
		assert.Equal(t, -2.0, TraitDelta(nil, ClassWrong, AxisX))
	})

	t.Run("axis weight scales base", func(t *testing.T) {
		loading := &TraitLoading{AxisWeight: map[Axis]float64{AxisX: 0.5}}
		assert.Equal(t, 1.0, TraitDelta(loading, ClassRevelatory, AxisX))
		// Unweighted axes keep weight 1.
		assert.Equal(t, 3.0, TraitDelta(loading, ClassRevelatory, AxisY))
	})

	t.Run("override wins over weight", func(t *testing.T) {
		loading := &TraitLoading{
			AxisWeight: map[Axis]float64{AxisZ: 2},
			Overrides: map[AnswerClass]map[Axis]float64{
				ClassRevelatory: {AxisZ: 4},
			},
		}
		assert.Equal(t, 4.0, TraitDelta(loading, ClassRevelatory, AxisZ))
		// Other classes still use the weighted base.
		assert.Equal(t, -4.0, TraitDelta(loading, ClassWrong, AxisZ))
	})
}

func TestParseTier(t *testing.T) {
	for input, want := range map[string]Tier{
		"tier1": Tier1,
		"TIER2": Tier2,
		"3":     Tier3,
	} {
		got, err := ParseTier(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseTier("tier4")
	assert.Error(t, err)
}

func TestGameStateClone(t *testing.T) {
	s := NewGameState()
	s.AnsweredQuestionIDs["Q1"] = true
	s.Traits[AxisX] = 2

	clone := s.Clone()
	clone.AnsweredQuestionIDs["Q2"] = true
	clone.Traits[AxisX] = 5
	clone.RoundAnswerTally["A"] = 9

	assert.False(t, s.AnsweredQuestionIDs["Q2"])
	assert.Equal(t, 2.0, s.Traits[AxisX])
	assert.Equal(t, 0, s.RoundAnswerTally["A"])
}

func TestConsumePowerUp(t *testing.T) {
	s := NewGameState()
	s.ActivePowerUps = []PowerUp{PowerRemoveWrongAnswer}

	assert.True(t, s.HasPowerUp(PowerRemoveWrongAnswer))
	assert.True(t, s.ConsumePowerUp(PowerRemoveWrongAnswer))
	assert.False(t, s.ConsumePowerUp(PowerRemoveWrongAnswer))
	assert.Empty(t, s.ActivePowerUps)
}
