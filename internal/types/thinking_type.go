package types

// Thinking dimension identifiers. Order matters: OrderedThinkingTypes is the
// pedagogical sequence used when selecting dimensions for a new path, from
// most foundational to most advanced.
const (
	ThinkingTypeFallacyDetection    = "fallacy_detection"
	ThinkingTypeCausalAnalysis      = "causal_analysis"
	ThinkingTypePremiseChallenge    = "premise_challenge"
	ThinkingTypeIterativeReflection = "iterative_reflection"
	ThinkingTypeConnectionTransfer  = "connection_transfer"
)

var OrderedThinkingTypes = []string{
	ThinkingTypeFallacyDetection,
	ThinkingTypeCausalAnalysis,
	ThinkingTypePremiseChallenge,
	ThinkingTypeIterativeReflection,
	ThinkingTypeConnectionTransfer,
}

type ThinkingTypeMeta struct {
	Name  string
	Icon  string
	Color string
}

var thinkingTypeMeta = map[string]ThinkingTypeMeta{
	ThinkingTypeFallacyDetection:    {Name: "谬误识别", Icon: "🔍", Color: "#EF4444"},
	ThinkingTypeCausalAnalysis:      {Name: "因果分析", Icon: "🔗", Color: "#F59E0B"},
	ThinkingTypePremiseChallenge:    {Name: "前提质疑", Icon: "❓", Color: "#8B5CF6"},
	ThinkingTypeIterativeReflection: {Name: "迭代反思", Icon: "🔄", Color: "#10B981"},
	ThinkingTypeConnectionTransfer:  {Name: "关联迁移", Icon: "🌐", Color: "#3B82F6"},
}

func MetaForThinkingType(id string) ThinkingTypeMeta {
	if m, ok := thinkingTypeMeta[id]; ok {
		return m
	}
	return ThinkingTypeMeta{Name: id, Icon: "💡", Color: "#6B7280"}
}

func IsValidThinkingType(id string) bool {
	_, ok := thinkingTypeMeta[id]
	return ok
}
