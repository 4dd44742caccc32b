package services

import (
	"fmt"

	"github.com/mindforge/thinkpath-backend/internal/types"
)

// Task-context assembly is table-driven and persistence-free so the copy
// the client sees can be tested on its own.

func phaseForLevel(level int) string {
	switch {
	case level <= 2:
		return "基础巩固"
	case level == 3:
		return "能力提升"
	case level == 4:
		return "深度思考"
	default:
		return "高级挑战"
	}
}

type taskRationale struct {
	why   string
	learn string
}

var rationaleByLevel = map[int]taskRationale{
	1: {
		why:   "这个任务帮助你建立批判性思维的基本框架，打好后续进阶的地基",
		learn: "掌握本维度的核心概念，学会识别最常见的思维误区",
	},
	2: {
		why:   "在基础之上增加变化，训练你在更复杂的材料中应用已学方法",
		learn: "把基本方法用到更贴近真实生活的场景里，提升判断的稳定性",
	},
	3: {
		why:   "这是从「会用」到「用好」的关键一级，强化分析的深度与系统性",
		learn: "学会拆解多层论证结构，独立完成一次完整的批判性分析",
	},
	4: {
		why:   "高阶材料要求你综合多个思维维度，形成自己的分析路径",
		learn: "在模糊与冲突的信息中保持清晰判断，输出有说服力的结论",
	},
	5: {
		why:   "最后的挑战检验你能否把批判性思维迁移到全新领域",
		learn: "面对陌生问题时自主选择思维工具，完成专家级的分析",
	},
}

var firstTimeRationale = taskRationale{
	why:   "这是为你定制的第一个任务，从最基础的思维训练开始，轻松上手",
	learn: "了解批判性思维训练的节奏，完成你的第一次每日练习",
}

// rationaleFor maps (level, isFirstTime) onto the why/learn copy, letting a
// step's own rationale win when it carries one.
func rationaleFor(step *types.PathStep, isFirstTime bool) (why, learn string) {
	if step != nil && step.Rationale != "" {
		why = step.Rationale
	}
	if step != nil && step.Outcomes != "" {
		learn = step.Outcomes
	}
	if why != "" && learn != "" {
		return why, learn
	}

	fallback := firstTimeRationale
	if !isFirstTime {
		level := 1
		if step != nil {
			level = step.Level
		}
		if r, ok := rationaleByLevel[level]; ok {
			fallback = r
		}
	}
	if why == "" {
		why = fallback.why
	}
	if learn == "" {
		learn = fallback.learn
	}
	return why, learn
}

// levelProgress is the fraction of steps at the given level, across the
// whole path, that are completed. It feeds both currentPhaseProgress and
// milestoneProgress: two names for one number at this point in the
// lifecycle.
func levelProgress(steps []types.PathStep, level int) float64 {
	total := 0
	done := 0
	for i := range steps {
		if steps[i].Level != level {
			continue
		}
		total++
		if steps[i].Completed {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// nextMilestone finds the first step after currentIndex whose level differs
// from the current step's level and phrases the transition; when the rest
// of the path stays on this level the milestone is finishing the path.
func nextMilestone(steps []types.PathStep, currentIndex int) string {
	if currentIndex < 0 || currentIndex >= len(steps) {
		return "完成整条学习路径"
	}
	currentLevel := steps[currentIndex].Level
	for i := currentIndex + 1; i < len(steps); i++ {
		if steps[i].Level != currentLevel {
			return fmt.Sprintf("完成等级%d，进入等级%d", currentLevel, steps[i].Level)
		}
	}
	return "完成整条学习路径"
}
