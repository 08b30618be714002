package runtime

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/aretw0/nous/pkg/domain"
)

const initialThread = 4

// Game is the orchestrating state machine. It owns the GameState aggregate
// and glues the question and fate engines into state mutations; engines never
// touch fields outside their contract.
type Game struct {
	state        *domain.GameState
	questionDeck []domain.Question
	fateDeck     []domain.FateCard
	questions    *QuestionEngine
	fate         *FateEngine
	rng          *rand.Rand
	logger       *slog.Logger
}

// NewGame wires a game over the given decks. The rand source drives every
// draw and shuffle, so injecting a seeded source makes play deterministic.
func NewGame(questions []domain.Question, fateCards []domain.FateCard, rng *rand.Rand, logger *slog.Logger) *Game {
	g := &Game{
		state:        domain.NewGameState(),
		questionDeck: questions,
		fateDeck:     fateCards,
		rng:          rng,
		logger:       logger,
	}
	g.questions = NewQuestionEngine(g.questionDeck, rng)
	g.fate = NewFateEngine(g.fateDeck, rng)
	return g
}

// State returns the live aggregate. Callers outside this package should
// prefer Snapshot or State().Clone().
func (g *Game) State() *domain.GameState {
	return g.state
}

// Fate exposes the fate engine for hosts that drive the card flow directly.
func (g *Game) Fate() *FateEngine {
	return g.fate
}

// Questions exposes the question engine.
func (g *Game) Questions() *QuestionEngine {
	return g.questions
}

// Snapshot returns the flat display binding.
func (g *Game) Snapshot() domain.Snapshot {
	return domain.SnapshotOf(g.state)
}

// InitializeGame resets all counters for a fresh session.
// Lives scale with the table: participantCount + 1.
func (g *Game) InitializeGame(participantCount int) {
	prev := g.state
	s := domain.NewGameState()
	s.Lives = participantCount + 1
	s.Thread = initialThread
	s.RoundsToWin = prev.RoundsToWin
	g.state = s

	g.questions = NewQuestionEngine(g.questionDeck, g.rng)
	g.fate = NewFateEngine(g.fateDeck, g.rng)

	g.logger.Info("game initialized", "participants", participantCount, "lives", s.Lives)
}

// Restore replaces the aggregate wholesale (after validation) and rebuilds
// engine state from it.
func (g *Game) Restore(state *domain.GameState) {
	g.state = state
	g.questions = NewQuestionEngine(g.questionDeck, g.rng)
	for id := range state.AnsweredQuestionIDs {
		g.questions.MarkAnswered(id)
	}
	g.questions.RestoreTier(state.DifficultyLevel)
	g.fate = NewFateEngine(g.fateDeck, g.rng)
}

// StartNewRound begins the next round: the thread budget shrinks as the
// player nears victory, and a card drawn in the lobby becomes active now.
func (g *Game) StartNewRound() {
	s := g.state
	s.RoundNumber++
	s.RoundScore = 0
	remainingWins := s.RoundsToWin - s.RoundsWon
	s.Thread = remainingWins + 1
	s.NotWrongCount = 0
	s.RoundPassed = false
	s.ActiveRoundEffects = nil
	s.RoundAnswerTally = domain.NewTally()
	s.ActivePowerUps = nil
	s.AnsweredThisRound = nil
	s.CurrentFateCard = nil
	s.CurrentCategory = domain.DefaultCategory
	s.CurrentAnswers = nil
	s.Phase = domain.PhaseRound

	s.ActiveFateCard = s.PendingFateCard
	s.PendingFateCard = nil
	if s.ActiveFateCard != nil && s.ActiveFateCard.ID == domain.CardScholarsBoon {
		s.Thread++ // Scholar's Boon round-start bonus
	}

	g.logger.Debug("round started", "round", s.RoundNumber, "thread", s.Thread)
}

// PullThread spends one thread to reveal a question. It never fails the round
// itself; the caller checks thread after scoring.
func (g *Game) PullThread() {
	g.state.Thread--
}

// SpendThreadToWeave is the gated spend that buys a category reroll.
func (g *Game) SpendThreadToWeave() bool {
	if g.state.Thread > 0 {
		g.state.Thread--
		return true
	}
	return false
}

// ShuffleNextCategory rerolls the upcoming question category.
func (g *Game) ShuffleNextCategory() {
	g.state.CurrentCategory = domain.Categories[g.rng.Intn(len(domain.Categories))]
}

// IncrementAudacity bumps the audacity counter (the "Disagree" action).
func (g *Game) IncrementAudacity() {
	g.state.Audacity++
}

// LoseRoundPoints forfeits the in-round score.
func (g *Game) LoseRoundPoints() {
	g.state.RoundScore = 0
}

// RecordAnswer logs an answer into the per-round history.
func (g *Game) RecordAnswer(questionID, letter string) {
	g.state.AnsweredThisRound = append(g.state.AnsweredThisRound, domain.AnswerRecord{
		QuestionID: questionID,
		Letter:     letter,
	})
}

// ResetRound clears per-round bookkeeping without ending the round.
func (g *Game) ResetRound() {
	g.state.AnsweredThisRound = nil
	g.state.ActiveRoundEffects = nil
}

// NextQuestion pulls the next unanswered question into play. Returns
// domain.ErrDeckExhausted when every pool is empty; the caller should end the
// round.
func (g *Game) NextQuestion() (*domain.QuestionView, error) {
	s := g.state
	q := g.questions.NextQuestion()
	if q == nil {
		return nil, domain.ErrDeckExhausted
	}
	s.CurrentQuestion = q
	s.CurrentAnswers = append([]domain.Answer(nil), q.Answers...)

	if s.ConsumePowerUp(domain.PowerRemoveWrongAnswer) {
		for i, ans := range s.CurrentAnswers {
			if ans.AnswerClass == domain.ClassWrong {
				s.CurrentAnswers = append(s.CurrentAnswers[:i], s.CurrentAnswers[i+1:]...)
				break
			}
		}
	}

	s.DifficultyLevel = g.questions.Tier()
	s.Phase = domain.PhaseQuestion
	return domain.ViewOf(s), nil
}

// EvaluateAnswer records the tally, applies live wager/tally effects, resolves
// the question, applies card micro-rules, and returns the display result.
func (g *Game) EvaluateAnswer(letter string) (*domain.AnswerResult, error) {
	s := g.state
	letter = strings.ToUpper(letter)
	idx := answerIndex(letter)
	if idx < 0 {
		return nil, fmt.Errorf("unknown answer letter %q", letter)
	}
	if s.CurrentQuestion == nil {
		return nil, domain.ErrNoQuestion
	}
	if idx >= len(s.CurrentAnswers) {
		return nil, fmt.Errorf("answer %s not offered for this question", letter)
	}

	s.RoundAnswerTally[letter]++

	// Tally-based effects tick live as answers arrive, not only at round end.
	for i := range s.ActiveRoundEffects {
		eff := &s.ActiveRoundEffects[i]
		switch eff.Kind {
		case domain.EffectApplyWager:
			if eff.Target == "answer-"+strings.ToLower(letter) &&
				eff.Reward != nil && eff.Reward.Type == domain.RewardScore {
				s.Score += eff.Reward.Value
			}
		case domain.EffectTallyAnswers:
			if strings.EqualFold(letter, eff.Target) {
				eff.Count++
			}
		}
	}

	question := s.CurrentQuestion
	s.AnsweredQuestionIDs[question.ID] = true

	acc := NewAccumulator()
	selected := g.questions.Resolve(question.ID, s.CurrentAnswers, idx, acc)

	correct := selected.AnswerClass != domain.ClassWrong
	threadChange := acc.Thread
	scoreChange := acc.Points

	if correct {
		s.NotWrongCount++
		s.CorrectAnswersThisDifficulty++
	}

	for _, axis := range domain.Axes {
		s.Traits[axis] = domain.ClampTrait(s.Traits[axis] + acc.Traits[axis])
	}

	// Micro-rules keyed by the active fate card.
	if s.ActiveFateCard != nil {
		switch s.ActiveFateCard.ID {
		case domain.CardWhispersOfDoubt:
			if !correct {
				threadChange--
			}
		case domain.CardSuddenClarity:
			if correct && selected.AnswerClass == domain.ClassRevelatory {
				scoreChange++
			}
		}
	}

	s.Thread += threadChange
	s.RoundScore += scoreChange

	if tier := g.questions.Tier(); tier != s.DifficultyLevel {
		s.DifficultyLevel = tier
		s.CorrectAnswersThisDifficulty = 0
		g.logger.Debug("difficulty advanced", "tier", tier.String())
	}

	if s.NotWrongCount >= 3 {
		s.RoundPassed = true
	}

	g.RecordAnswer(question.ID, letter)
	s.Phase = domain.PhaseResult

	outcome := "The thread holds."
	if !correct {
		outcome = fmt.Sprintf("The thread frays by %d", abs(threadChange))
	}

	return &domain.AnswerResult{
		Correct:     correct,
		Question:    question.Text,
		Answer:      selected.Text,
		Explanation: selected.Explanation,
		OutcomeText: outcome,
	}, nil
}

// DrawFateCard draws a card not yet completed this game. The card takes
// effect starting next round; drawing while one is pending is rejected.
func (g *Game) DrawFateCard() (*domain.FateCard, error) {
	s := g.state
	if s.PendingFateCard != nil {
		return nil, domain.ErrFatePending
	}
	card := g.fate.DrawEligible(s.CompletedFateCardIDs)
	if card == nil {
		return nil, domain.ErrFateDeckEmpty
	}
	s.PendingFateCard = card
	s.CurrentFateCard = card
	g.logger.Debug("fate card drawn", "card", card.ID)
	return card, nil
}

// FateButtonLabels returns the fixed 3-slot label surface for the drawn card.
func (g *Game) FateButtonLabels() [domain.MaxChoices]string {
	var labels [domain.MaxChoices]string
	card := g.state.CurrentFateCard
	if card == nil {
		return labels
	}
	for i, choice := range card.Choices {
		if i >= domain.MaxChoices {
			break
		}
		labels[i] = choice.Label
	}
	return labels
}

// ChooseFateOption applies the chosen card effect against live state and
// marks the card completed. A nonexistent option is a no-op: the card stays
// in play so a valid choice can still be made.
func (g *Game) ChooseFateOption(index int) (string, error) {
	s := g.state
	card := s.CurrentFateCard
	if card == nil {
		return "", domain.ErrNoFateCard
	}
	if index < 0 || index >= len(card.Choices) {
		return "", nil
	}
	s.CurrentFateCard = nil
	s.CompletedFateCardIDs[card.ID] = true

	eff := card.Choices[index].Effect
	if eff == nil {
		return "", nil
	}

	switch eff.Kind {
	case domain.EffectImmediateScore:
		s.Score += eff.Value
	case domain.EffectScore:
		s.RoundScore += eff.Value
	case domain.EffectPowerUp:
		s.ActivePowerUps = append(s.ActivePowerUps, eff.Power)
	case domain.EffectAddCardToDeck:
		if eff.Card != nil {
			g.fate.AddCard(*eff.Card)
		}
	default:
		// Any other effect, known or not, becomes a round-long effect.
		queued := *eff
		queued.CardTitle = card.Title
		queued.Count = 0
		s.ActiveRoundEffects = append(s.ActiveRoundEffects, queued)
	}

	return eff.FlavorText, nil
}

// ApplyFateResults folds a fate resolution into live state: banked score
// first, then the round score delta, then the multiplier.
func (g *Game) ApplyFateResults(res domain.RoundResolution) {
	s := g.state
	s.Score += res.ScoreDelta
	s.RoundScore += res.RoundScoreDelta
	if res.RoundScoreMultiplier > 0 {
		s.RoundScore *= res.RoundScoreMultiplier
	}
}

// CutThread abandons the round, banking the round score without a win.
func (g *Game) CutThread() {
	g.EndRound(domain.OutcomeEscape)
}

// EndRound resolves deferred effects, then applies the outcome.
func (g *Game) EndRound(outcome domain.RoundOutcome) {
	s := g.state

	// Fate engine effects fold against the tally before it resets.
	g.ApplyFateResults(g.fate.ResolveRound(s.RoundAnswerTally.Clone(), outcome == domain.OutcomeWin))
	g.resolveRoundEffects()

	switch outcome {
	case domain.OutcomeWin:
		s.RoundsWon++
		s.Score += s.RoundScore
	case domain.OutcomeLose:
		s.Lives--
	case domain.OutcomeEscape:
		s.Score += s.RoundScore
		s.RoundScore = 0
	}

	switch {
	case g.HasWonGame():
		s.Phase = domain.PhaseGameWon
	case g.IsOutOfLives():
		s.Phase = domain.PhaseGameOver
	default:
		s.Phase = domain.PhaseLobby
	}

	g.logger.Debug("round ended", "outcome", string(outcome), "score", s.Score, "lives", s.Lives)
}

// resolveRoundEffects settles the queued round effects against the tally and
// clears both (single-shot per round).
func (g *Game) resolveRoundEffects() {
	s := g.state
	for _, eff := range s.ActiveRoundEffects {
		switch eff.Kind {
		case domain.EffectRoundPrediction:
			letter, count := majority(s.RoundAnswerTally)
			if count > 0 && letter == eff.Prediction && eff.Reward != nil {
				switch eff.Reward.Type {
				case domain.RewardDoubleRoundScore:
					s.RoundScore *= 2
				case domain.RewardScore:
					s.Score += eff.Reward.Value
				}
			}
		case domain.EffectRoundModifier:
			// The reward only lands while thread remains positive.
			if eff.Reward != nil && s.Thread > 0 && eff.Reward.Type == domain.RewardScore {
				s.Score += eff.Reward.Value
			}
		case domain.EffectTallyAnswers:
			if eff.Count > 0 {
				s.Score += eff.Count
			}
		}
	}
	s.ActiveRoundEffects = nil
	s.RoundAnswerTally = domain.NewTally()
}

// HasWonGame reports the win terminal condition.
func (g *Game) HasWonGame() bool {
	return g.state.RoundsWon >= g.state.RoundsToWin
}

// IsOutOfLives reports the loss terminal condition.
func (g *Game) IsOutOfLives() bool {
	return g.state.Lives <= 0
}

func answerIndex(letter string) int {
	for i, l := range domain.Letters {
		if l == letter {
			return i
		}
	}
	return -1
}

// majority returns the letter with the highest tally. Ties resolve to the
// earliest letter in presentation order.
func majority(t domain.Tally) (string, int) {
	best, bestCount := "", -1
	for _, letter := range domain.Letters {
		if t[letter] > bestCount {
			best, bestCount = letter, t[letter]
		}
	}
	return best, bestCount
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
