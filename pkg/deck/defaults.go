package deck

import (
	_ "embed"

	"github.com/aretw0/nous/pkg/domain"
)

//go:embed defaults/questions.yaml
var defaultQuestionsYAML []byte

//go:embed defaults/cards.yaml
var defaultCardsYAML []byte

// DefaultQuestions parses the embedded question deck.
func DefaultQuestions() ([]domain.Question, error) {
	return ParseQuestions(defaultQuestionsYAML)
}

// DefaultFateCards parses the embedded fate deck.
func DefaultFateCards() ([]domain.FateCard, error) {
	return ParseFateCards(defaultCardsYAML)
}

// Default returns a loader serving the embedded decks.
func Default() (*Static, error) {
	questions, err := DefaultQuestions()
	if err != nil {
		return nil, err
	}
	cards, err := DefaultFateCards()
	if err != nil {
		return nil, err
	}
	return &Static{QuestionDeck: questions, FateDeck: cards}, nil
}

// FallbackQuestions is a minimal hardcoded deck used when no deck can be
// loaded at all, so the engine always has something to serve.
func FallbackQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:             "FB001",
			Category:       domain.DefaultCategory,
			Title:          "The Question Behind the Questions",
			Text:           "What remains when every deck has failed to load?",
			DifficultyTier: domain.Tier1,
			Answers: []domain.Answer{
				{Text: "This question", AnswerClass: domain.ClassTypical},
				{Text: "The asking itself", AnswerClass: domain.ClassRevelatory},
				{Text: "Nothing", AnswerClass: domain.ClassWrong},
			},
		},
	}
}
