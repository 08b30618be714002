package nous

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aretw0/nous/internal/metrics"
	"github.com/aretw0/nous/internal/runtime"
	"github.com/aretw0/nous/pkg/adapters/memory"
	"github.com/aretw0/nous/pkg/deck"
	"github.com/aretw0/nous/pkg/domain"
	"github.com/aretw0/nous/pkg/ports"
)

// Version is the library version, overridable at build time.
var Version = "0.2.0"

// Participant bounds for a table.
const (
	MinParticipants = 1
	MaxParticipants = 20
)

// Engine is the high-level entry point for the Nous rules engine.
// It wraps the internal game state machine and provides a simplified API
// for hosts (CLI, HTTP, or embedding applications).
type Engine struct {
	game    *runtime.Game
	loader  ports.DeckLoader
	store   ports.SaveStore
	slot    string
	rng     *rand.Rand
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom DeckLoader, bypassing the embedded default
// decks.
func WithLoader(l ports.DeckLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithSaveStore injects a save store. Defaults to an in-memory store.
func WithSaveStore(s ports.SaveStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithSlot sets the save slot name.
func WithSlot(slot string) Option {
	return func(e *Engine) {
		e.slot = slot
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSeed makes every draw and shuffle deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a rand source directly.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes a Nous engine. Without options it serves the embedded
// decks, keeps saves in memory, and draws from a time-seeded source.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{slot: runtime.DefaultSlot}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.rng == nil {
		eng.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.loader == nil {
		loader, err := deck.Default()
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}

	questions, err := eng.loader.Questions(ctx)
	if err != nil || len(questions) == 0 {
		eng.logger.Warn("question deck unavailable, serving fallback", "error", err)
		questions = deck.FallbackQuestions()
	}
	fateCards, err := eng.loader.FateCards(ctx)
	if err != nil {
		eng.logger.Warn("fate deck unavailable, playing without cards", "error", err)
		fateCards = nil
	}

	eng.game = runtime.NewGame(questions, fateCards, eng.rng, eng.logger)
	return eng, nil
}

// InitializeGame starts a fresh session. The participant count is clamped
// into [MinParticipants, MaxParticipants]; lives scale with it.
func (e *Engine) InitializeGame(participantCount int) {
	if participantCount < MinParticipants {
		participantCount = MinParticipants
	}
	if participantCount > MaxParticipants {
		participantCount = MaxParticipants
	}
	e.game.InitializeGame(participantCount)
	e.metrics.GameStarted()
}

// StartNewRound begins the next round.
func (e *Engine) StartNewRound() {
	e.game.StartNewRound()
}

// PullThread spends one thread to reveal a question.
func (e *Engine) PullThread() {
	e.game.PullThread()
}

// SpendThreadToWeave spends one thread to reroll the category, if any remains.
func (e *Engine) SpendThreadToWeave() bool {
	return e.game.SpendThreadToWeave()
}

// ShuffleNextCategory rerolls the upcoming question category.
func (e *Engine) ShuffleNextCategory() {
	e.game.ShuffleNextCategory()
}

// IncrementAudacity bumps the audacity counter.
func (e *Engine) IncrementAudacity() {
	e.game.IncrementAudacity()
}

// LoseRoundPoints forfeits the in-round score.
func (e *Engine) LoseRoundPoints() {
	e.game.LoseRoundPoints()
}

// NextQuestion pulls the next unanswered question into play.
func (e *Engine) NextQuestion() (*domain.QuestionView, error) {
	return e.game.NextQuestion()
}

// EvaluateAnswer scores the answer at the given letter (A, B or C).
func (e *Engine) EvaluateAnswer(letter string) (*domain.AnswerResult, error) {
	result, err := e.game.EvaluateAnswer(letter)
	if err == nil {
		e.metrics.QuestionAnswered(result.Correct)
	}
	return result, err
}

// DrawFateCard draws a fate card; it becomes active next round.
func (e *Engine) DrawFateCard() (*domain.FateCard, error) {
	card, err := e.game.DrawFateCard()
	if err == nil {
		e.metrics.FateCardDrawn()
	}
	return card, err
}

// FateButtonLabels returns the fixed 3-slot label surface of the drawn card.
func (e *Engine) FateButtonLabels() [domain.MaxChoices]string {
	return e.game.FateButtonLabels()
}

// ChooseFateOption applies the chosen card option and returns its flavor text.
func (e *Engine) ChooseFateOption(index int) (string, error) {
	return e.game.ChooseFateOption(index)
}

// EndRound resolves deferred effects and applies the outcome.
func (e *Engine) EndRound(outcome domain.RoundOutcome) {
	e.game.EndRound(outcome)
	e.metrics.RoundEnded(string(outcome))
}

// CutThread abandons the round, banking the round score without a win.
func (e *Engine) CutThread() {
	e.game.CutThread()
	e.metrics.RoundEnded(string(domain.OutcomeEscape))
}

// HasWonGame reports the win terminal condition.
func (e *Engine) HasWonGame() bool {
	return e.game.HasWonGame()
}

// IsOutOfLives reports the loss terminal condition.
func (e *Engine) IsOutOfLives() bool {
	return e.game.IsOutOfLives()
}

// Snapshot returns the flat display binding.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.game.Snapshot()
}

// State returns an independent copy of the full aggregate.
func (e *Engine) State() *domain.GameState {
	return e.game.State().Clone()
}

// Game exposes the underlying state machine for advanced hosts.
func (e *Engine) Game() *runtime.Game {
	return e.game
}

// Store returns the configured save store.
func (e *Engine) Store() ports.SaveStore {
	return e.store
}

// SaveGame persists the current state to the configured slot. Failures are
// logged and reported as false, never raised.
func (e *Engine) SaveGame(ctx context.Context) bool {
	data, err := runtime.EncodeSave(e.game.State())
	if err != nil {
		e.logger.Error("save failed", "error", err)
		return false
	}
	if err := e.store.Save(ctx, e.slot, data); err != nil {
		e.logger.Error("save failed", "slot", e.slot, "error", err)
		return false
	}
	e.metrics.SaveWritten()
	e.logger.Info("game saved", "slot", e.slot)
	return true
}

// LoadGame restores state from the configured slot. A missing slot or an
// invalid payload leaves the live state untouched and returns false.
func (e *Engine) LoadGame(ctx context.Context) bool {
	data, err := e.store.Load(ctx, e.slot)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			e.logger.Error("load failed", "slot", e.slot, "error", err)
		}
		return false
	}
	state, err := runtime.DecodeSave(data)
	if err != nil {
		e.logger.Error("load rejected", "slot", e.slot, "error", err)
		return false
	}
	e.game.Restore(state)
	e.metrics.SaveLoaded()
	e.logger.Info("game loaded", "slot", e.slot)
	return true
}

// DeleteSave removes the configured slot.
func (e *Engine) DeleteSave(ctx context.Context) error {
	return e.store.Delete(ctx, e.slot)
}
