package runtime

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nous/pkg/domain"
)

func testAnswers() []domain.Answer {
	return []domain.Answer{
		{Text: "typical", AnswerClass: domain.ClassTypical},
		{Text: "revelatory", AnswerClass: domain.ClassRevelatory},
		{Text: "wrong", AnswerClass: domain.ClassWrong},
	}
}

func testQuestion(id string, tier domain.Tier, traits *domain.TraitLoading) domain.Question {
	return domain.Question{
		ID:             id,
		Text:           "q " + id,
		DifficultyTier: tier,
		Answers:        testAnswers(),
		Traits:         traits,
	}
}

func testDeck(perTier int) []domain.Question {
	var deck []domain.Question
	for tier := domain.Tier1; tier <= domain.Tier3; tier++ {
		for i := 0; i < perTier; i++ {
			deck = append(deck, testQuestion(fmt.Sprintf("T%dQ%d", tier, i), tier, nil))
		}
	}
	return deck
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// answerIndexOf finds the presented index of an answer class in a shuffled set.
func answerIndexOf(t *testing.T, answers []domain.Answer, class domain.AnswerClass) int {
	t.Helper()
	for i, ans := range answers {
		if ans.AnswerClass == class {
			return i
		}
	}
	t.Fatalf("no %s answer present", class)
	return -1
}

func TestQuestionEngine_NoRepeats(t *testing.T) {
	deck := testDeck(4)
	engine := NewQuestionEngine(deck, testRand())

	seen := make(map[string]bool)
	for {
		q := engine.NextQuestion()
		if q == nil {
			break
		}
		assert.False(t, seen[q.ID], "question %s served twice", q.ID)
		seen[q.ID] = true
		engine.Resolve(q.ID, q.Answers, 0, NewAccumulator())
	}

	assert.Len(t, seen, len(deck))
}

func TestQuestionEngine_TierAdvancesAfterFourResolutions(t *testing.T) {
	engine := NewQuestionEngine(testDeck(6), testRand())
	require.Equal(t, domain.Tier1, engine.Tier())

	for i := 0; i < 4; i++ {
		q := engine.NextQuestion()
		require.NotNil(t, q)
		require.Equal(t, domain.Tier1, q.DifficultyTier)
		engine.Resolve(q.ID, q.Answers, 0, NewAccumulator())
	}

	// Exactly at four, never earlier.
	assert.Equal(t, domain.Tier2, engine.Tier())
}

func TestQuestionEngine_TierAdvancesOnPoolExhaustion(t *testing.T) {
	deck := []domain.Question{
		testQuestion("T1Q0", domain.Tier1, nil),
		testQuestion("T1Q1", domain.Tier1, nil),
		testQuestion("T2Q0", domain.Tier2, nil),
	}
	engine := NewQuestionEngine(deck, testRand())

	for i := 0; i < 2; i++ {
		q := engine.NextQuestion()
		require.NotNil(t, q)
		engine.Resolve(q.ID, q.Answers, 0, NewAccumulator())
	}

	assert.Equal(t, domain.Tier2, engine.Tier())
}

func TestQuestionEngine_Tier3IsTerminal(t *testing.T) {
	engine := NewQuestionEngine(testDeck(6), testRand())
	engine.RestoreTier(domain.Tier3)

	for i := 0; i < 5; i++ {
		q := engine.NextQuestion()
		require.NotNil(t, q)
		engine.Resolve(q.ID, q.Answers, 0, NewAccumulator())
	}

	assert.Equal(t, domain.Tier3, engine.Tier())
}

func TestQuestionEngine_LowerTierLeftoversStillServed(t *testing.T) {
	deck := []domain.Question{
		testQuestion("T1Q0", domain.Tier1, nil),
	}
	engine := NewQuestionEngine(deck, testRand())
	engine.RestoreTier(domain.Tier3)

	q := engine.NextQuestion()
	require.NotNil(t, q)
	assert.Equal(t, "T1Q0", q.ID)
}

func TestQuestionEngine_ResolvePayouts(t *testing.T) {
	cases := []struct {
		class  domain.AnswerClass
		points int
		thread int
	}{
		{domain.ClassTypical, 2, 0},
		{domain.ClassRevelatory, 1, 1},
		{domain.ClassWrong, 0, -1},
	}

	for _, tc := range cases {
		t.Run(string(tc.class), func(t *testing.T) {
			engine := NewQuestionEngine(testDeck(4), testRand())
			q := engine.NextQuestion()
			require.NotNil(t, q)

			acc := NewAccumulator()
			engine.Resolve(q.ID, q.Answers, answerIndexOf(t, q.Answers, tc.class), acc)

			assert.Equal(t, tc.points, acc.Points)
			assert.Equal(t, tc.thread, acc.Thread)
		})
	}
}

func TestQuestionEngine_ResolveTraits(t *testing.T) {
	traits := &domain.TraitLoading{
		AxisWeight: map[domain.Axis]float64{domain.AxisX: 0.5},
	}
	deck := []domain.Question{testQuestion("Q1", domain.Tier1, traits)}
	engine := NewQuestionEngine(deck, testRand())

	q := engine.NextQuestion()
	require.NotNil(t, q)

	acc := NewAccumulator()
	engine.Resolve(q.ID, q.Answers, answerIndexOf(t, q.Answers, domain.ClassRevelatory), acc)

	// Base +2 on x, weighted by 0.5; y and z keep the unweighted base.
	assert.InDelta(t, 1.0, acc.Traits[domain.AxisX], 1e-9)
	assert.InDelta(t, 3.0, acc.Traits[domain.AxisY], 1e-9)
	assert.InDelta(t, 2.0, acc.Traits[domain.AxisZ], 1e-9)
}

func TestQuestionEngine_ShuffleKeepsAnswerSet(t *testing.T) {
	engine := NewQuestionEngine(testDeck(4), testRand())
	q := engine.NextQuestion()
	require.NotNil(t, q)

	classes := make(map[domain.AnswerClass]int)
	for _, ans := range q.Answers {
		classes[ans.AnswerClass]++
	}
	assert.Equal(t, map[domain.AnswerClass]int{
		domain.ClassTypical:    1,
		domain.ClassRevelatory: 1,
		domain.ClassWrong:      1,
	}, classes)
}
