package domain

import (
	"fmt"
	"strings"
)

// Tier is a question difficulty level. Play starts at Tier1 and only ever
// moves upward; Tier3 is terminal.
type Tier int

const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
)

// String renders the tier in deck-file form ("tier1".."tier3").
func (t Tier) String() string {
	return fmt.Sprintf("tier%d", int(t))
}

// ParseTier accepts both deck-file ("tier2") and numeric ("2") forms.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "tier")
	switch s {
	case "1":
		return Tier1, nil
	case "2":
		return Tier2, nil
	case "3":
		return Tier3, nil
	}
	return 0, fmt.Errorf("unknown difficulty tier %q", s)
}

// AnswerClass classifies an answer's payout behavior.
type AnswerClass string

const (
	ClassTypical    AnswerClass = "typical"
	ClassRevelatory AnswerClass = "revelatory"
	ClassWrong      AnswerClass = "wrong"
)

// Answer is one of a question's (up to) three answers.
type Answer struct {
	Text        string      `json:"text" yaml:"text" mapstructure:"text"`
	AnswerClass AnswerClass `json:"class" yaml:"class" mapstructure:"class"`
	Explanation string      `json:"explanation,omitempty" yaml:"explanation,omitempty" mapstructure:"explanation"`
}

// TraitLoading weights how a question moves the trait axes. AxisWeight scales
// the per-class base deltas; Overrides replace them outright for a class.
type TraitLoading struct {
	AxisWeight map[Axis]float64                 `json:"axisWeight,omitempty" yaml:"axisWeight,omitempty" mapstructure:"axisWeight"`
	Overrides  map[AnswerClass]map[Axis]float64 `json:"overrides,omitempty" yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// Question is a deck entry. Answers carry the canonical order; hosts shuffle
// at presentation time.
type Question struct {
	ID             string        `json:"questionId" yaml:"questionId" mapstructure:"questionId"`
	Category       string        `json:"category,omitempty" yaml:"category,omitempty" mapstructure:"category"`
	Title          string        `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Text           string        `json:"text" yaml:"text" mapstructure:"text"`
	DifficultyTier Tier          `json:"difficultyTier" yaml:"difficultyTier" mapstructure:"difficultyTier"`
	Answers        []Answer      `json:"answers" yaml:"answers" mapstructure:"answers"`
	Traits         *TraitLoading `json:"traits,omitempty" yaml:"traits,omitempty" mapstructure:"traits"`
}
