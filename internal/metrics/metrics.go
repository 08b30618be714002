// Package metrics exposes Prometheus instrumentation for the rules engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's counters. A nil *Metrics is a valid no-op
// receiver so instrumentation stays optional.
type Metrics struct {
	GamesStarted      prometheus.Counter
	QuestionsAnswered *prometheus.CounterVec
	RoundsEnded       *prometheus.CounterVec
	FateCardsDrawn    prometheus.Counter
	SavesWritten      prometheus.Counter
	SavesLoaded       prometheus.Counter
}

// New registers the engine metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "games_started_total",
			Help:      "Number of game sessions initialized.",
		}),
		QuestionsAnswered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "questions_answered_total",
			Help:      "Number of answers evaluated, by correctness.",
		}, []string{"correct"}),
		RoundsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "rounds_ended_total",
			Help:      "Number of rounds ended, by outcome.",
		}, []string{"outcome"}),
		FateCardsDrawn: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "fate_cards_drawn_total",
			Help:      "Number of fate cards drawn.",
		}),
		SavesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "saves_written_total",
			Help:      "Number of successful save writes.",
		}),
		SavesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nous",
			Name:      "saves_loaded_total",
			Help:      "Number of successful save loads.",
		}),
	}
}

// GameStarted records a session start.
func (m *Metrics) GameStarted() {
	if m != nil {
		m.GamesStarted.Inc()
	}
}

// QuestionAnswered records an evaluated answer.
func (m *Metrics) QuestionAnswered(correct bool) {
	if m != nil {
		label := "false"
		if correct {
			label = "true"
		}
		m.QuestionsAnswered.WithLabelValues(label).Inc()
	}
}

// RoundEnded records a round outcome.
func (m *Metrics) RoundEnded(outcome string) {
	if m != nil {
		m.RoundsEnded.WithLabelValues(outcome).Inc()
	}
}

// FateCardDrawn records a card draw.
func (m *Metrics) FateCardDrawn() {
	if m != nil {
		m.FateCardsDrawn.Inc()
	}
}

// SaveWritten records a successful save.
func (m *Metrics) SaveWritten() {
	if m != nil {
		m.SavesWritten.Inc()
	}
}

// SaveLoaded records a successful load.
func (m *Metrics) SaveLoaded() {
	if m != nil {
		m.SavesLoaded.Inc()
	}
}
