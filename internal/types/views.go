package types

// Derived, non-persisted views returned to callers. Regenerated on every
// request; never a source of truth.

type UserStats struct {
	TotalMinutes      int `json:"totalMinutes"`
	AvgSessionMinutes int `json:"avgSessionMinutes"`
	CurrentStreak     int `json:"currentStreak"`
	LongestStreak     int `json:"longestStreak"`
}

type UserState struct {
	UserID           string              `json:"userId"`
	ThinkingProgress []*ThinkingProgress `json:"criticalThinkingProgress"`
	TheoryProgress   []*TheoryProgress   `json:"theoryProgress"`
	Preferences      *UserPreference     `json:"preferences"`
	Stats            UserStats           `json:"stats"`
}

// DailyTask packages the current path step with explanatory context.
type DailyTask struct {
	Step                 *PathStep `json:"step"`
	PathID               string    `json:"pathId"`
	IsCompleted          bool      `json:"isCompleted"`
	IsFirstTime          bool      `json:"isFirstTime"`
	CurrentPhase         string    `json:"currentPhase"`
	CurrentPhaseProgress float64   `json:"currentPhaseProgress"`
	WhyThisTask          string    `json:"whyThisTask"`
	WhatYouWillLearn     string    `json:"whatYouWillLearn"`
	NextMilestone        string    `json:"nextMilestone"`
	MilestoneProgress    float64   `json:"milestoneProgress"`
}

type OptionalPractice struct {
	ThinkingTypeID string `json:"thinkingTypeId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	Icon           string `json:"icon"`
	Color          string `json:"color"`
	Reason         string `json:"reason"`
}

type CompleteTaskResult struct {
	Success        bool      `json:"success"`
	NewProgress    int       `json:"newProgress"`
	CompletedSteps int       `json:"completedSteps"`
	TotalSteps     int       `json:"totalSteps"`
	NextStep       *PathStep `json:"nextStep,omitempty"`
}
