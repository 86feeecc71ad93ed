package badge

import (
	"fmt"
	"math"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "EASY"
	DifficultyMedium    Difficulty = "MEDIUM"
	DifficultyHard      Difficulty = "HARD"
	DifficultyLegendary Difficulty = "LEGENDARY"
)

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

type Category string

const (
	CategoryLearning    Category = "LEARNING"
	CategoryAssessment  Category = "ASSESSMENT"
	CategoryEngagement  Category = "ENGAGEMENT"
	CategoryProgress    Category = "PROGRESS"
	CategoryAchievement Category = "ACHIEVEMENT"
	CategoryOther       Category = "OTHER"
)

// criteriaMeta holds the static per-criteria tables.
type criteriaMeta struct {
	daysPerUnit int
	basePoints  int
	category    Category
	unit        string // singular, pluralized with an "s"
	titles      [4]string
}

var (
	criteriaMetas = map[CriteriaType]criteriaMeta{
		CriteriaCourseCompletion: {
			daysPerUnit: 30, basePoints: 100, category: CategoryLearning, unit: "course",
			titles: [4]string{"Course Finisher", "Dedicated Learner", "Knowledge Seeker", "Master Scholar"},
		},
		CriteriaQuestionnaireCompletion: {
			daysPerUnit: 2, basePoints: 20, category: CategoryAssessment, unit: "questionnaire",
			titles: [4]string{"Quiz Taker", "Quiz Enthusiast", "Quiz Expert", "Quiz Master"},
		},
		CriteriaLessonCompletion: {
			daysPerUnit: 1, basePoints: 10, category: CategoryProgress, unit: "lesson",
			titles: [4]string{"First Steps", "Steady Learner", "Lesson Devotee", "Lesson Marathoner"},
		},
		CriteriaCertificateAchieved: {
			daysPerUnit: 45, basePoints: 150, category: CategoryAchievement, unit: "certificate",
			titles: [4]string{"Certified", "Certificate Collector", "Credential Expert", "Hall of Fame"},
		},
		CriteriaDailyLogin: {
			daysPerUnit: 1, basePoints: 5, category: CategoryEngagement, unit: "day",
			titles: [4]string{"Welcome Back", "Regular", "Devoted", "Unstoppable"},
		},
	}
	unknownMeta = criteriaMeta{
		daysPerUnit: 7, basePoints: 10, category: CategoryOther, unit: "achievement",
		titles: [4]string{"Achiever", "Achiever", "Achiever", "Achiever"},
	}
)

func metaOf(ct CriteriaType) criteriaMeta {
	if meta, ok := criteriaMetas[ct]; ok {
		return meta
	}
	return unknownMeta
}

// DifficultyOf maps a criteria value to its difficulty; the first matching threshold wins.
func DifficultyOf(criteriaValue int) Difficulty {
	switch {
	case criteriaValue <= 1:
		return DifficultyEasy
	case criteriaValue <= 5:
		return DifficultyMedium
	case criteriaValue <= 10:
		return DifficultyHard
	default:
		return DifficultyLegendary
	}
}

func difficultyTier(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 3
	}
}

// RarityOf maps a badge criteria to its rarity.
// Long login streaks and certificate collections are special-cased before the generic ladder.
func RarityOf(ct CriteriaType, criteriaValue int) Rarity {
	switch {
	case ct == CriteriaDailyLogin && criteriaValue >= 30:
		return RarityLegendary
	case ct == CriteriaCertificateAchieved && criteriaValue >= 5:
		return RarityEpic
	case criteriaValue >= 10:
		return RarityRare
	case criteriaValue >= 5:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// EstimatedDaysToEarn estimates how many days it takes to make up the remaining progress.
func EstimatedDaysToEarn(ct CriteriaType, criteriaValue, current int) int {
	remaining := criteriaValue - current
	if remaining < 0 {
		remaining = 0
	}
	return remaining * metaOf(ct).daysPerUnit
}

// ProgressPercentage returns current/criteriaValue as a rounded percentage capped at 100.
func ProgressPercentage(criteriaValue, current int, earned bool) int {
	if earned || current >= criteriaValue {
		return 100
	}
	if criteriaValue <= 0 || current <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(criteriaValue) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

func RequirementDescription(ct CriteriaType, criteriaValue int) string {
	meta := metaOf(ct)
	unit := meta.unit
	if criteriaValue != 1 {
		unit += "s"
	}

	switch ct {
	case CriteriaCourseCompletion, CriteriaLessonCompletion, CriteriaQuestionnaireCompletion:
		return fmt.Sprintf("Complete %d %s", criteriaValue, unit)
	case CriteriaCertificateAchieved:
		return fmt.Sprintf("Earn %d %s", criteriaValue, unit)
	case CriteriaDailyLogin:
		return fmt.Sprintf("Log in for %d consecutive %s", criteriaValue, unit)
	default:
		return fmt.Sprintf("Reach %d %s", criteriaValue, unit)
	}
}

func RewardPoints(ct CriteriaType, criteriaValue int) int {
	return metaOf(ct).basePoints * criteriaValue
}

// RewardTitle is tiered on the badge difficulty.
func RewardTitle(ct CriteriaType, criteriaValue int) string {
	return metaOf(ct).titles[difficultyTier(DifficultyOf(criteriaValue))]
}

// SpecialAccess lists the perks unlocked by a badge, if any.
func SpecialAccess(ct CriteriaType, criteriaValue int) []string {
	switch {
	case ct == CriteriaCourseCompletion && criteriaValue >= 5:
		return []string{"advanced-courses"}
	case ct == CriteriaCertificateAchieved && criteriaValue >= 3:
		return []string{"exclusive-webinars"}
	case ct == CriteriaDailyLogin && criteriaValue >= 30:
		return []string{"early-access"}
	}
	return []string{}
}

func CategoryOf(ct CriteriaType) Category {
	return metaOf(ct).category
}
