// Package http exposes game sessions over a JSON HTTP API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/nous"
	"github.com/aretw0/nous/internal/logging"
	"github.com/aretw0/nous/pkg/domain"
)

// EngineFactory builds a fresh engine for a new game session.
type EngineFactory func(ctx context.Context) (*nous.Engine, error)

// Server hosts game sessions. Each session owns one engine; a session mutex
// serializes its actions because the engine itself is not goroutine-safe.
type Server struct {
	factory EngineFactory
	logger  *slog.Logger
	metrics http.Handler

	mu       sync.Mutex
	sessions map[string]*gameSession
}

type gameSession struct {
	mu     sync.Mutex
	engine *nous.Engine
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a handler (e.g. promhttp) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a session server with the given engine factory.
func NewServer(factory EngineFactory, opts ...Option) *Server {
	s := &Server{
		factory:  factory,
		logger:   logging.NewNop(),
		sessions: make(map[string]*gameSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.createGame)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.getSnapshot)
			r.Post("/rounds", s.startRound)
			r.Post("/rounds/end", s.endRound)
			r.Post("/questions", s.nextQuestion)
			r.Post("/answers", s.evaluateAnswer)
			r.Post("/fate/draw", s.drawFate)
			r.Post("/fate/choose", s.chooseFate)
			r.Post("/actions", s.performAction)
			r.Post("/save", s.saveGame)
			r.Post("/load", s.loadGame)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "nous-http",
		"version": strings.TrimSpace(nous.Version),
	})
}

type createGameRequest struct {
	Participants int `json:"participants"`
}

type createGameResponse struct {
	GameID   string          `json:"gameId"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var body createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("createGame: invalid request body", "error", err)
		return
	}

	engine, err := s.factory(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Engine error: %v", err), http.StatusInternalServerError)
		s.logger.Error("createGame: engine factory failed", "error", err)
		return
	}
	engine.InitializeGame(body.Participants)

	id := newGameID()
	s.mu.Lock()
	s.sessions[id] = &gameSession{engine: engine}
	s.mu.Unlock()

	s.logger.Info("game created", "game_id", id, "participants", body.Participants)
	writeJSON(w, createGameResponse{GameID: id, Snapshot: engine.Snapshot()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *gameSession {
	id := chi.URLParam(r, "gameID")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, snap)
}

func (s *Server) startRound(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	sess.engine.StartNewRound()
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, snap)
}

type endRoundRequest struct {
	Outcome domain.RoundOutcome `json:"outcome"`
}

func (s *Server) endRound(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body endRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch body.Outcome {
	case domain.OutcomeWin, domain.OutcomeLose, domain.OutcomeEscape:
	default:
		http.Error(w, fmt.Sprintf("Unknown outcome %q", body.Outcome), http.StatusBadRequest)
		return
	}
	sess.mu.Lock()
	sess.engine.EndRound(body.Outcome)
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, snap)
}

func (s *Server) nextQuestion(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	sess.engine.PullThread()
	view, err := sess.engine.NextQuestion()
	sess.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrDeckExhausted) {
			http.Error(w, "Question deck exhausted", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Question error: %v", err), http.StatusInternalServerError)
		s.logger.Error("nextQuestion failed", "error", err)
		return
	}
	writeJSON(w, view)
}

type answerRequest struct {
	Letter string `json:"letter"`
}

type answerResponse struct {
	Result   *domain.AnswerResult `json:"result"`
	Snapshot domain.Snapshot      `json:"snapshot"`
}

func (s *Server) evaluateAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sess.mu.Lock()
	result, err := sess.engine.EvaluateAnswer(body.Letter)
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestion) {
			http.Error(w, "No question in play", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Answer error: %v", err), http.StatusBadRequest)
		return
	}
	writeJSON(w, answerResponse{Result: result, Snapshot: snap})
}

func (s *Server) drawFate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	card, err := sess.engine.DrawFateCard()
	sess.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFatePending):
			http.Error(w, "A fate card is already pending", http.StatusConflict)
		case errors.Is(err, domain.ErrFateDeckEmpty):
			http.Error(w, "Fate deck is empty", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Fate error: %v", err), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, card)
}

type chooseFateRequest struct {
	Index int `json:"index"`
}

type chooseFateResponse struct {
	FlavorText string          `json:"flavorText"`
	Snapshot   domain.Snapshot `json:"snapshot"`
}

func (s *Server) chooseFate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body chooseFateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sess.mu.Lock()
	flavor, err := sess.engine.ChooseFateOption(body.Index)
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("Fate error: %v", err), http.StatusConflict)
		return
	}
	writeJSON(w, chooseFateResponse{FlavorText: flavor, Snapshot: snap})
}

type actionRequest struct {
	Action string `json:"action"`
}

func (s *Server) performAction(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var body actionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch body.Action {
	case "weave":
		if !sess.engine.SpendThreadToWeave() {
			http.Error(w, "No thread remaining", http.StatusConflict)
			return
		}
		sess.engine.ShuffleNextCategory()
	case "disagree":
		sess.engine.IncrementAudacity()
	case "cut":
		sess.engine.CutThread()
	default:
		http.Error(w, fmt.Sprintf("Unknown action %q", body.Action), http.StatusBadRequest)
		return
	}
	writeJSON(w, sess.engine.Snapshot())
}

func (s *Server) saveGame(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	ok := sess.engine.SaveGame(r.Context())
	sess.mu.Unlock()
	writeJSON(w, map[string]bool{"saved": ok})
}

func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	ok := sess.engine.LoadGame(r.Context())
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, map[string]any{"loaded": ok, "snapshot": snap})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func newGameID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
