package domain

// AnswerResult is returned to the host after evaluating an answer.
type AnswerResult struct {
	Correct     bool   `json:"correct"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
	OutcomeText string `json:"outcomeText"`
}

// RoundOutcome names how a round ended.
type RoundOutcome string

const (
	OutcomeWin    RoundOutcome = "win"
	OutcomeLose   RoundOutcome = "lose"
	OutcomeEscape RoundOutcome = "escape"
)

// RoundResolution is the folded result of the fate engine's stored effects,
// applied to live state at round end.
type RoundResolution struct {
	ScoreDelta           int `json:"scoreDelta"`
	RoundScoreDelta      int `json:"roundScoreDelta"`
	RoundScoreMultiplier int `json:"roundScoreMultiplier"`
}

// QuestionView is the host-facing presentation of a question: shuffled answer
// texts keyed by letter.
type QuestionView struct {
	Title   string            `json:"title"`
	Text    string            `json:"text"`
	Choices map[string]string `json:"choices"`
}

// CardView is the host-facing presentation of a fate card.
type CardView struct {
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// Snapshot is the flat display-value binding for the host.
type Snapshot struct {
	Phase           Phase            `json:"phase"`
	Lives           int              `json:"lives"`
	Score           int              `json:"score"`
	RoundScore      int              `json:"roundScore"`
	Thread          int              `json:"thread"`
	RoundNumber     int              `json:"roundNumber"`
	RemainingRounds int              `json:"remainingRounds"`
	Audacity        int              `json:"audacity"`
	Category        string           `json:"category"`
	DifficultyLevel Tier             `json:"difficultyLevel"`
	ActiveEffects   []string         `json:"activeEffects"`
	Traits          map[Axis]float64 `json:"traits"`
}

// SnapshotOf flattens the state for display binding.
func SnapshotOf(s *GameState) Snapshot {
	effects := make([]string, 0, len(s.ActiveRoundEffects))
	for _, eff := range s.ActiveRoundEffects {
		if eff.CardTitle != "" {
			effects = append(effects, eff.CardTitle)
		}
	}
	traits := make(map[Axis]float64, len(s.Traits))
	for k, v := range s.Traits {
		traits[k] = v
	}
	return Snapshot{
		Phase:           s.Phase,
		Lives:           s.Lives,
		Score:           s.Score,
		RoundScore:      s.RoundScore,
		Thread:          s.Thread,
		RoundNumber:     s.RoundNumber,
		RemainingRounds: s.RoundsToWin - s.RoundsWon,
		Audacity:        s.Audacity,
		Category:        s.CurrentCategory,
		DifficultyLevel: s.DifficultyLevel,
		ActiveEffects:   effects,
		Traits:          traits,
	}
}

// ViewOf builds the question presentation from the current state.
// Returns nil if no question is in play.
func ViewOf(s *GameState) *QuestionView {
	if s.CurrentQuestion == nil {
		return nil
	}
	choices := make(map[string]string, len(s.CurrentAnswers))
	for i, ans := range s.CurrentAnswers {
		if i >= len(Letters) {
			break
		}
		choices[Letters[i]] = ans.Text
	}
	return &QuestionView{
		Title:   s.CurrentQuestion.Title,
		Text:    s.CurrentQuestion.Text,
		Choices: choices,
	}
}
