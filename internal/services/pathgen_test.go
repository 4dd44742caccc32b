package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mindforge/thinkpath-backend/internal/types"
)

func progressWith(level int, levelProgress float64) *types.ThinkingProgress {
	values := make([]float64, types.MaxLevel)
	if level >= 1 && level <= types.MaxLevel {
		values[level-1] = levelProgress
	}
	return &types.ThinkingProgress{
		CurrentLevel:  level,
		LevelProgress: datatypes.NewJSONSlice(values),
	}
}

func TestSelectDimensionsFreshUser(t *testing.T) {
	got := selectDimensions(map[string]*types.ThinkingProgress{}, "")

	want := []string{
		types.ThinkingTypeFallacyDetection,
		types.ThinkingTypeCausalAnalysis,
		types.ThinkingTypePremiseChallenge,
		types.ThinkingTypeIterativeReflection,
		types.ThinkingTypeConnectionTransfer,
	}
	if len(got) != len(want) {
		t.Fatalf("selectDimensions returned %d dims, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selectDimensions[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectDimensionsPinned(t *testing.T) {
	got := selectDimensions(map[string]*types.ThinkingProgress{}, types.ThinkingTypePremiseChallenge)
	if len(got) != 1 || got[0] != types.ThinkingTypePremiseChallenge {
		t.Fatalf("pinned selection=%v, want [premise_challenge]", got)
	}
}

func TestSelectDimensionsFirstUnmastered(t *testing.T) {
	byType := map[string]*types.ThinkingProgress{
		types.ThinkingTypeFallacyDetection: progressWith(3, 90),
		types.ThinkingTypeCausalAnalysis:   progressWith(2, 40),
	}
	got := selectDimensions(byType, "")
	if len(got) != 1 || got[0] != types.ThinkingTypeCausalAnalysis {
		t.Fatalf("selection=%v, want [causal_analysis]", got)
	}
}

func TestSelectDimensionsAllMasteredRestarts(t *testing.T) {
	byType := map[string]*types.ThinkingProgress{}
	for _, dim := range types.OrderedThinkingTypes {
		p := progressWith(5, 95)
		byType[dim] = p
	}
	got := selectDimensions(byType, "")
	if len(got) != 1 || got[0] != types.ThinkingTypeFallacyDetection {
		t.Fatalf("all-mastered selection=%v, want restart at fallacy_detection", got)
	}
}

func TestStartLevelBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		progress *types.ThinkingProgress
		want     int
	}{
		{"no_record", nil, 1},
		{"level2_at_81_advances", progressWith(2, 81), 3},
		{"level2_at_80_holds", progressWith(2, 80), 2},
		{"level2_at_50_holds", progressWith(2, 50), 2},
		{"level2_at_49_stays", progressWith(2, 49), 2},
		{"level5_at_95_capped", progressWith(5, 95), 5},
		{"out_of_range_level_clamped", progressWith(9, 0), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := startLevelFor(tc.progress); got != tc.want {
				t.Fatalf("startLevelFor=%d, want %d", got, tc.want)
			}
		})
	}
}

func theoryUnit(dim string, level int) *types.TheoryContent {
	return &types.TheoryContent{
		ID:               uuid.New(),
		ThinkingTypeID:   dim,
		Level:            level,
		Title:            fmt.Sprintf("%s theory L%d", dim, level),
		EstimatedMinutes: 12,
		Published:        true,
	}
}

func practiceUnit(dim string, level, order int) *types.PracticeContent {
	return &types.PracticeContent{
		ID:               uuid.New(),
		ThinkingTypeID:   dim,
		Level:            level,
		Title:            fmt.Sprintf("%s practice L%d #%d", dim, level, order),
		EstimatedMinutes: 8,
		SortOrder:        order,
	}
}

// buildTestPath emits a full path for the given dimensions from level 1 to
// 5, one theory unit and two practice units per level, then wires it.
func buildTestPath(dims ...string) []types.PathStep {
	var steps []types.PathStep
	for _, dim := range dims {
		for level := 1; level <= types.MaxLevel; level++ {
			steps = append(steps, buildGroupSteps(dim, level,
				[]*types.TheoryContent{theoryUnit(dim, level)},
				[]*types.PracticeContent{practiceUnit(dim, level, 1), practiceUnit(dim, level, 2)},
			)...)
		}
	}
	wirePrerequisites(steps)
	computeUnlocks(steps)
	promoteAvailable(steps)
	return steps
}

func stepByID(t *testing.T, steps []types.PathStep, id string) *types.PathStep {
	t.Helper()
	for i := range steps {
		if steps[i].ID == id {
			return &steps[i]
		}
	}
	t.Fatalf("step %q not found", id)
	return nil
}

func TestGroupCompositionInvariants(t *testing.T) {
	steps := buildTestPath(types.ThinkingTypeFallacyDetection)

	counts := map[string]map[string]int{}
	for _, s := range steps {
		if s.Level < types.MinLevel || s.Level > types.MaxLevel {
			t.Fatalf("step %s has level %d outside [1,5]", s.ID, s.Level)
		}
		wantDifficulty := types.DifficultyForLevel(s.Level)
		if s.Difficulty != wantDifficulty {
			t.Fatalf("step %s difficulty=%q, want %q", s.ID, s.Difficulty, wantDifficulty)
		}
		key := fmt.Sprintf("L%d", s.Level)
		if counts[key] == nil {
			counts[key] = map[string]int{}
		}
		counts[key][s.Type]++
	}

	for level := 1; level <= types.MaxLevel; level++ {
		key := fmt.Sprintf("L%d", level)
		wantAssessment := 0
		if level < types.MaxLevel {
			wantAssessment = 1
		}
		if counts[key][types.StepTypeAssessment] != wantAssessment {
			t.Fatalf("level %d assessment count=%d, want %d", level, counts[key][types.StepTypeAssessment], wantAssessment)
		}
		wantReflection := 0
		if level == 3 || level == types.MaxLevel {
			wantReflection = 1
		}
		if counts[key][types.StepTypeReflection] != wantReflection {
			t.Fatalf("level %d reflection count=%d, want %d", level, counts[key][types.StepTypeReflection], wantReflection)
		}
	}
}

func TestSynthesizedPracticeWhenPoolEmpty(t *testing.T) {
	steps := buildGroupSteps(types.ThinkingTypeCausalAnalysis, 2,
		[]*types.TheoryContent{theoryUnit(types.ThinkingTypeCausalAnalysis, 2)}, nil)

	practiceCount := 0
	for _, s := range steps {
		if s.Type == types.StepTypePractice {
			practiceCount++
		}
	}
	if practiceCount != 1 {
		t.Fatalf("practice steps=%d, want exactly one synthesized step", practiceCount)
	}
}

func TestPrerequisiteWiring(t *testing.T) {
	dim := types.ThinkingTypeFallacyDetection
	steps := buildTestPath(dim)

	practice := stepByID(t, steps, dim+"-l1-practice-1")
	if len(practice.Prerequisites) != 1 || practice.Prerequisites[0] != dim+"-l1-theory-1" {
		t.Fatalf("l1 practice prerequisites=%v, want [theory]", practice.Prerequisites)
	}

	assessment := stepByID(t, steps, dim+"-l1-assessment")
	if len(assessment.Prerequisites) != 3 {
		t.Fatalf("l1 assessment prerequisites=%v, want theory plus both practices", assessment.Prerequisites)
	}

	// Level 1 has no reflection, so its closing step is the assessment.
	theory2 := stepByID(t, steps, dim+"-l2-theory-1")
	found := false
	for _, pre := range theory2.Prerequisites {
		if pre == dim+"-l1-assessment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("l2 theory prerequisites=%v, want cross-level edge on l1 assessment", theory2.Prerequisites)
	}

	reflection3 := stepByID(t, steps, dim+"-l3-reflection")
	if len(reflection3.Prerequisites) != 1 || reflection3.Prerequisites[0] != dim+"-l3-assessment" {
		t.Fatalf("l3 reflection prerequisites=%v, want [l3 assessment]", reflection3.Prerequisites)
	}

	// Level 3 closes with its reflection, which gates level 4 theory.
	theory4 := stepByID(t, steps, dim+"-l4-theory-1")
	found = false
	for _, pre := range theory4.Prerequisites {
		if pre == dim+"-l3-reflection" {
			found = true
		}
	}
	if !found {
		t.Fatalf("l4 theory prerequisites=%v, want cross-level edge on l3 reflection", theory4.Prerequisites)
	}

	// Level 5 has no assessment; reflection falls back to the group's
	// learning and practice steps.
	reflection5 := stepByID(t, steps, dim+"-l5-reflection")
	if len(reflection5.Prerequisites) != 3 {
		t.Fatalf("l5 reflection prerequisites=%v, want theory plus both practices", reflection5.Prerequisites)
	}
}

func TestUnlocksAreExactInverse(t *testing.T) {
	steps := buildTestPath(types.ThinkingTypeFallacyDetection, types.ThinkingTypeCausalAnalysis)

	unlocks := map[string]map[string]bool{}
	for _, s := range steps {
		for _, u := range s.Unlocks {
			if unlocks[s.ID] == nil {
				unlocks[s.ID] = map[string]bool{}
			}
			unlocks[s.ID][u] = true
		}
	}

	edgeCount := 0
	for _, s := range steps {
		for _, pre := range s.Prerequisites {
			edgeCount++
			if !unlocks[pre][s.ID] {
				t.Fatalf("edge %s->%s has no inverse unlock", pre, s.ID)
			}
		}
	}

	unlockCount := 0
	for _, s := range steps {
		unlockCount += len(s.Unlocks)
	}
	if unlockCount != edgeCount {
		t.Fatalf("unlock edges=%d, prerequisite edges=%d, want equal", unlockCount, edgeCount)
	}
}

func TestPrerequisiteGraphIsAcyclic(t *testing.T) {
	steps := buildTestPath(types.OrderedThinkingTypes...)

	indegree := map[string]int{}
	dependents := map[string][]string{}
	for _, s := range steps {
		if _, ok := indegree[s.ID]; !ok {
			indegree[s.ID] = 0
		}
		for _, pre := range s.Prerequisites {
			indegree[s.ID]++
			dependents[pre] = append(dependents[pre], s.ID)
		}
	}

	var queue []string
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited != len(steps) {
		t.Fatalf("topological sort visited %d of %d steps: prerequisite graph has a cycle", visited, len(steps))
	}
}

func TestInitialAvailability(t *testing.T) {
	steps := buildTestPath(types.ThinkingTypeFallacyDetection)

	for _, s := range steps {
		if len(s.Prerequisites) == 0 {
			if s.Status != types.StepStatusAvailable {
				t.Fatalf("step %s has no prerequisites but status=%q", s.ID, s.Status)
			}
		} else if s.Status != types.StepStatusLocked {
			t.Fatalf("step %s has prerequisites but status=%q", s.ID, s.Status)
		}
	}

	if steps[0].Type != types.StepTypeLearning || steps[0].Status != types.StepStatusAvailable {
		t.Fatalf("first step should be an available theory step, got %s/%s", steps[0].Type, steps[0].Status)
	}
}
