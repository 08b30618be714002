// Package deck parses and validates question and fate-card decks.
//
// Decks are authored in YAML (JSON being a YAML subset, both work). Every
// record is structurally validated before it is decoded, so one malformed
// entry fails the whole load with a precise error instead of corrupting a
// game mid-session.
package deck

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/nous/pkg/domain"
	"github.com/aretw0/nous/pkg/schema"
)

var questionSchema = schema.Schema{
	"questionId":     schema.String(),
	"text":           schema.String(),
	"difficultyTier": schema.Any(), // string or numeric, checked by the decode hook
	"answers":        schema.Slice(schema.Map(schema.Any())),
}

var cardSchema = schema.Schema{
	"cardId":  schema.String(),
	"title":   schema.String(),
	"text":    schema.String(),
	"choices": schema.Slice(schema.Map(schema.Any())),
}

// ParseQuestions decodes a question deck. IDs must be unique, every question
// carries exactly three answers, and every answer class must be known.
func ParseQuestions(data []byte) ([]domain.Question, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse question deck: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, record := range raw {
		if err := schema.Validate(questionSchema, record); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		var q domain.Question
		if err := decode(record, &q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		if len(q.Answers) != len(domain.Letters) {
			return nil, fmt.Errorf("question %q: expected %d answers, got %d", q.ID, len(domain.Letters), len(q.Answers))
		}
		for _, ans := range q.Answers {
			switch ans.AnswerClass {
			case domain.ClassTypical, domain.ClassRevelatory, domain.ClassWrong:
			default:
				return nil, fmt.Errorf("question %q: unknown answer class %q", q.ID, ans.AnswerClass)
			}
		}
		if q.DifficultyTier < domain.Tier1 || q.DifficultyTier > domain.Tier3 {
			return nil, fmt.Errorf("question %q: difficulty tier out of range", q.ID)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ParseFateCards decodes a fate deck. IDs must be unique and a card offers at
// most three choices.
func ParseFateCards(data []byte) ([]domain.FateCard, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fate deck: %w", err)
	}

	cards := make([]domain.FateCard, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, record := range raw {
		if err := schema.Validate(cardSchema, record); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		var c domain.FateCard
		if err := decode(record, &c); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("card %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
		if len(c.Choices) > domain.MaxChoices {
			return nil, fmt.Errorf("card %q: at most %d choices allowed, got %d", c.ID, domain.MaxChoices, len(c.Choices))
		}
		for j, choice := range c.Choices {
			if choice.Label == "" {
				return nil, fmt.Errorf("card %q: choice %d has no label", c.ID, j)
			}
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// decode maps an untyped record onto a domain struct, converting tier strings
// and weakly-typed numbers along the way.
func decode(record map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       tierHook,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(record)
}

var tierType = reflect.TypeOf(domain.Tier(0))

func tierHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != tierType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return domain.ParseTier(v)
	case int:
		return domain.Tier(v), nil
	case float64:
		return domain.Tier(int(v)), nil
	default:
		return data, nil
	}
}

// Static serves in-memory decks. It is the loader behind the embedded
// defaults and the natural choice for tests.
type Static struct {
	QuestionDeck []domain.Question
	FateDeck     []domain.FateCard
}

// Questions implements ports.DeckLoader.
func (s *Static) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.QuestionDeck, nil
}

// FateCards implements ports.DeckLoader.
func (s *Static) FateCards(ctx context.Context) ([]domain.FateCard, error) {
	return s.FateDeck, nil
}

// FileLoader reads decks from YAML files on disk. Either path may be empty,
// in which case the embedded default deck is served instead.
type FileLoader struct {
	QuestionsPath string
	CardsPath     string
}

// Questions implements ports.DeckLoader.
func (l *FileLoader) Questions(ctx context.Context) ([]domain.Question, error) {
	if l.QuestionsPath == "" {
		return DefaultQuestions()
	}
	data, err := os.ReadFile(l.QuestionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read question deck: %w", err)
	}
	return ParseQuestions(data)
}

// FateCards implements ports.DeckLoader.
func (l *FileLoader) FateCards(ctx context.Context) ([]domain.FateCard, error) {
	if l.CardsPath == "" {
		return DefaultFateCards()
	}
	data, err := os.ReadFile(l.CardsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fate deck: %w", err)
	}
	return ParseFateCards(data)
}
