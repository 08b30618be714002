package runtime

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/nous/pkg/domain"
)

// questionsPerTier is how many resolutions a tier serves before advancing.
const questionsPerTier = 4

// Accumulator collects the deltas produced by resolving a question. The
// caller owns it and folds it into live state.
type Accumulator struct {
	Points int
	Thread int
	Traits map[domain.Axis]float64
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Traits: make(map[domain.Axis]float64)}
}

// QuestionEngine selects and scores questions across the three difficulty
// tiers. It owns the answered set and the within-tier counter; everything
// else is reported back through the accumulator.
type QuestionEngine struct {
	deck     []domain.Question
	pools    map[domain.Tier][]domain.Question
	tier     domain.Tier
	answered map[string]bool
	inTier   int
	rng      *rand.Rand
}

// NewQuestionEngine builds an engine over the given deck. The rand source is
// injected so draws and shuffles are reproducible in tests.
func NewQuestionEngine(deck []domain.Question, rng *rand.Rand) *QuestionEngine {
	pools := make(map[domain.Tier][]domain.Question)
	for _, q := range deck {
		pools[q.DifficultyTier] = append(pools[q.DifficultyTier], q)
	}
	return &QuestionEngine{
		deck:     deck,
		pools:    pools,
		tier:     domain.Tier1,
		answered: make(map[string]bool),
		rng:      rng,
	}
}

// Tier returns the current difficulty tier.
func (e *QuestionEngine) Tier() domain.Tier {
	return e.tier
}

// Answered reports whether a question has already been served.
func (e *QuestionEngine) Answered(id string) bool {
	return e.answered[id]
}

// MarkAnswered records an externally answered question (used when restoring
// a saved game).
func (e *QuestionEngine) MarkAnswered(id string) {
	e.answered[id] = true
}

// RestoreTier forces the tier pointer (used when restoring a saved game).
func (e *QuestionEngine) RestoreTier(t domain.Tier) {
	if t >= domain.Tier1 && t <= domain.Tier3 {
		e.tier = t
	}
}

// NextQuestion returns a uniformly random unanswered question, searching from
// the current tier downward so lower-tier leftovers are still served. The
// returned copy carries a freshly shuffled answer order. Returns nil when
// every pool is exhausted; the caller must treat that as a terminal condition.
func (e *QuestionEngine) NextQuestion() *domain.Question {
	for t := e.tier; t >= domain.Tier1; t-- {
		pool := e.eligible(t)
		if len(pool) == 0 {
			continue
		}
		q := pool[e.rng.Intn(len(pool))]
		q.Answers = e.shuffledAnswers(q)
		return &q
	}
	return nil
}

func (e *QuestionEngine) eligible(t domain.Tier) []domain.Question {
	var out []domain.Question
	for _, q := range e.pools[t] {
		if !e.answered[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func (e *QuestionEngine) shuffledAnswers(q domain.Question) []domain.Answer {
	answers := append([]domain.Answer(nil), q.Answers...)
	e.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}

// Resolve applies the chosen answer of a question: payout and trait deltas go
// into the accumulator, the question is marked answered, and tier state
// advances. The answer order used is the presented (shuffled) one, so callers
// pass the answers they showed.
//
// Resolving a question that is not in the deck is a programming error and
// panics.
func (e *QuestionEngine) Resolve(questionID string, answers []domain.Answer, answerIndex int, acc *Accumulator) domain.Answer {
	q := e.find(questionID)
	if q == nil {
		panic(fmt.Sprintf("runtime: question %q not in deck", questionID))
	}
	if answerIndex < 0 || answerIndex >= len(answers) {
		panic(fmt.Sprintf("runtime: answer index %d out of range for question %q", answerIndex, questionID))
	}
	ans := answers[answerIndex]

	score := domain.ClassScores[ans.AnswerClass]
	acc.Points += score.Points
	acc.Thread += score.Thread

	for _, axis := range domain.Axes {
		delta := domain.TraitDelta(q.Traits, ans.AnswerClass, axis)
		acc.Traits[axis] = domain.ClampTrait(acc.Traits[axis] + delta)
	}

	e.answered[questionID] = true
	e.inTier++

	if (e.inTier >= questionsPerTier || len(e.eligible(e.tier)) == 0) && e.tier != domain.Tier3 {
		e.inTier = 0
		e.tier++
	}

	return ans
}

func (e *QuestionEngine) find(id string) *domain.Question {
	for i := range e.deck {
		if e.deck[i].ID == id {
			return &e.deck[i]
		}
	}
	return nil
}
