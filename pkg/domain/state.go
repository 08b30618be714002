package domain

// Phase tracks where the resource/round lifecycle currently sits. Screen
// rendering belongs to the host; the engine only tracks the underlying shape.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseRound    Phase = "round"
	PhaseQuestion Phase = "question"
	PhaseResult   Phase = "result"
	PhaseGameWon  Phase = "game-won"
	PhaseGameOver Phase = "game-over"
)

// Letters enumerates the answer slots in presentation order.
var Letters = []string{"A", "B", "C"}

// Tally counts answers given this round, keyed by answer letter.
type Tally map[string]int

// NewTally returns a zeroed tally for all letters.
func NewTally() Tally {
	return Tally{"A": 0, "B": 0, "C": 0}
}

// Clone returns an independent copy.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// AnswerRecord logs one answer given during the current round.
type AnswerRecord struct {
	QuestionID string `json:"qid"`
	Letter     string `json:"letter"`
}

// DefaultCategory is the lobby category before any reroll.
const DefaultCategory = "Mind, Past"

// Categories are the rerollable question categories.
var Categories = []string{"Mind, Present", "Body, Future", "Soul, Past"}

// DefaultRoundsToWin is the per-game win target.
const DefaultRoundsToWin = 3

// GameState is the single mutable aggregate for one game session. It is owned
// by the state machine; engines receive it by contract and touch only the
// fields they own.
type GameState struct {
	Phase                        Phase            `json:"currentScreen"`
	Lives                        int              `json:"lives"`
	Score                        int              `json:"score"`
	RoundsToWin                  int              `json:"roundsToWin"`
	RoundsWon                    int              `json:"roundsWon"`
	RoundNumber                  int              `json:"roundNumber"`
	RoundScore                   int              `json:"roundScore"`
	Thread                       int              `json:"thread"`
	Audacity                     int              `json:"audacity"`
	DifficultyLevel              Tier             `json:"difficultyLevel"`
	CorrectAnswersThisDifficulty int              `json:"correctAnswersThisDifficulty"`
	AnsweredQuestionIDs          map[string]bool  `json:"answeredQuestionIds"`
	CompletedFateCardIDs         map[string]bool  `json:"completedFateCardIds"`
	ActiveRoundEffects           []Effect         `json:"activeRoundEffects"`
	CurrentFateCard              *FateCard        `json:"currentFateCard"`
	PendingFateCard              *FateCard        `json:"pendingFateCard"`
	ActiveFateCard               *FateCard        `json:"activeFateCard"`
	CurrentQuestion              *Question        `json:"currentQuestion"`
	CurrentAnswers               []Answer         `json:"currentAnswers"`
	NotWrongCount                int              `json:"notWrongCount"`
	RoundPassed                  bool             `json:"roundPassed"`
	CurrentCategory              string           `json:"currentCategory"`
	RoundAnswerTally             Tally            `json:"roundAnswerTally"`
	Traits                       map[Axis]float64 `json:"traits"`
	ActivePowerUps               []PowerUp        `json:"activePowerUps"`
	AnsweredThisRound            []AnswerRecord   `json:"answeredThisRound"`
}

// NewGameState returns the pre-initialization defaults. InitializeGame is
// still required before play.
func NewGameState() *GameState {
	return &GameState{
		Phase:                PhaseLobby,
		RoundsToWin:          DefaultRoundsToWin,
		RoundNumber:          1,
		DifficultyLevel:      Tier1,
		CurrentCategory:      DefaultCategory,
		AnsweredQuestionIDs:  make(map[string]bool),
		CompletedFateCardIDs: make(map[string]bool),
		RoundAnswerTally:     NewTally(),
		Traits:               map[Axis]float64{AxisX: 0, AxisY: 0, AxisZ: 0},
	}
}

// Clone deep-copies the state so callers can hold snapshots without aliasing
// the live aggregate.
func (s *GameState) Clone() *GameState {
	out := *s
	out.AnsweredQuestionIDs = cloneSet(s.AnsweredQuestionIDs)
	out.CompletedFateCardIDs = cloneSet(s.CompletedFateCardIDs)
	out.ActiveRoundEffects = append([]Effect(nil), s.ActiveRoundEffects...)
	out.CurrentAnswers = append([]Answer(nil), s.CurrentAnswers...)
	out.ActivePowerUps = append([]PowerUp(nil), s.ActivePowerUps...)
	out.AnsweredThisRound = append([]AnswerRecord(nil), s.AnsweredThisRound...)
	out.RoundAnswerTally = s.RoundAnswerTally.Clone()
	out.Traits = make(map[Axis]float64, len(s.Traits))
	for k, v := range s.Traits {
		out.Traits[k] = v
	}
	return &out
}

func cloneSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// HasPowerUp reports whether the power-up is currently held.
func (s *GameState) HasPowerUp(p PowerUp) bool {
	for _, held := range s.ActivePowerUps {
		if held == p {
			return true
		}
	}
	return false
}

// ConsumePowerUp removes one instance of the power-up, reporting whether it
// was held.
func (s *GameState) ConsumePowerUp(p PowerUp) bool {
	for i, held := range s.ActivePowerUps {
		if held == p {
			s.ActivePowerUps = append(s.ActivePowerUps[:i], s.ActivePowerUps[i+1:]...)
			return true
		}
	}
	return false
}
