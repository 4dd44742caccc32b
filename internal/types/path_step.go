package types

import "time"

const (
	StepTypeLearning   = "learning"
	StepTypePractice   = "practice"
	StepTypeAssessment = "assessment"
	StepTypeReflection = "reflection"
)

const (
	StepStatusLocked     = "locked"
	StepStatusAvailable  = "available"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// PathStep is one node of a generated curriculum. Steps are not relational
// rows: the whole ordered list is serialized into learning_path.steps.
// Field names are the JSON contract the client reads.
type PathStep struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	ThinkingTypeID   string     `json:"thinkingTypeId"`
	Level            int        `json:"level"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	EstimatedMinutes int        `json:"estimatedTime"`
	Difficulty       string     `json:"difficulty"`
	ContentID        string     `json:"contentId,omitempty"`
	Prerequisites    []string   `json:"prerequisites"`
	Unlocks          []string   `json:"unlocks"`
	Status           string     `json:"status"`
	Completed        bool       `json:"completed"`
	ProgressPercent  int        `json:"progressPercent"`
	Rationale        string     `json:"rationale,omitempty"`
	Outcomes         string     `json:"outcomes,omitempty"`
	Score            *int       `json:"score,omitempty"`
	TimeSpentSeconds int        `json:"timeSpentSeconds,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// DifficultyForLevel maps a curriculum level onto a coarse difficulty label.
func DifficultyForLevel(level int) string {
	switch {
	case level <= 2:
		return DifficultyBeginner
	case level <= 4:
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}
