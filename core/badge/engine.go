package badge

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/enrollment"
)

const defaultConcurrency = 4

// Progress is a user's standing against one badge.
type Progress struct {
	Badge                   Badge      `json:"badge"`
	IsEarned                bool       `json:"is_earned"`
	EarnedAt                *time.Time `json:"earned_at,omitempty"`
	CurrentProgress         int        `json:"current_progress"`
	ProgressPercentage      int        `json:"progress_percentage"`
	Difficulty              Difficulty `json:"difficulty"`
	Rarity                  Rarity     `json:"rarity"`
	EstimatedTimeToEarnDays *int       `json:"estimated_time_to_earn_days,omitempty"`
	RequirementDescription  string     `json:"requirement_description"`
	RewardPoints            int        `json:"reward_points"`
	RewardTitle             string     `json:"reward_title"`
	SpecialAccess           []string   `json:"special_access"`
	Category                Category   `json:"category"`
	EarnedByPercentage      int        `json:"earned_by_percentage"`
}

// Engine computes badge progress from the criteria counters.
type Engine struct {
	counters      *Counters
	studentBadges StudentBadgeRepository
	enrollments   enrollment.Repository
	log           core.Logger
	concurrency   int
}

func NewEngine(
	counters *Counters,
	studentBadges StudentBadgeRepository,
	enrollments enrollment.Repository,
	logger core.Logger,
	concurrency int,
) *Engine {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Engine{
		counters:      counters,
		studentBadges: studentBadges,
		enrollments:   enrollments,
		log:           logger,
		concurrency:   concurrency,
	}
}

// BuildProgress returns one Progress per badge of allBadges, in the same order.
// A failing counter is logged and leaves the progress of its badge at 0.
func (eng *Engine) BuildProgress(
	ctx context.Context,
	allBadges []Badge,
	earned []StudentBadge,
	userID, institutionID string,
) []Progress {
	earnedByID := make(map[string]StudentBadge, len(earned))
	for _, sb := range earned {
		earnedByID[sb.BadgeID] = sb
	}

	prgs := make([]Progress, len(allBadges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(eng.concurrency)
	for i := range allBadges {
		i := i
		g.Go(func() error {
			sb, isEarned := earnedByID[allBadges[i].ID]
			var earnedAt *time.Time
			if isEarned {
				at := sb.AwardedAt
				earnedAt = &at
			}
			prgs[i] = eng.progressOf(gctx, allBadges[i], isEarned, earnedAt, userID, institutionID)
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return prgs
}

func (eng *Engine) progressOf(
	ctx context.Context,
	bdg Badge,
	isEarned bool,
	earnedAt *time.Time,
	userID, institutionID string,
) Progress {
	current, err := eng.counters.Count(ctx, bdg.CriteriaType, userID, institutionID)
	if err != nil {
		eng.log.Error("counting badge progress: "+bdg.ID, err, map[string]interface{}{
			"badge_id":       bdg.ID,
			"criteria_type":  bdg.CriteriaType,
			"user_id":        userID,
			"institution_id": institutionID,
		})
		current = 0
	}

	prg := Progress{
		Badge:                  bdg,
		IsEarned:               isEarned,
		EarnedAt:               earnedAt,
		CurrentProgress:        current,
		ProgressPercentage:     ProgressPercentage(bdg.CriteriaValue, current, isEarned),
		Difficulty:             DifficultyOf(bdg.CriteriaValue),
		Rarity:                 RarityOf(bdg.CriteriaType, bdg.CriteriaValue),
		RequirementDescription: RequirementDescription(bdg.CriteriaType, bdg.CriteriaValue),
		RewardPoints:           RewardPoints(bdg.CriteriaType, bdg.CriteriaValue),
		RewardTitle:            RewardTitle(bdg.CriteriaType, bdg.CriteriaValue),
		SpecialAccess:          SpecialAccess(bdg.CriteriaType, bdg.CriteriaValue),
		Category:               CategoryOf(bdg.CriteriaType),
		EarnedByPercentage:     eng.EarnedByPercentage(ctx, bdg.ID, institutionID),
	}
	if !isEarned {
		days := EstimatedDaysToEarn(bdg.CriteriaType, bdg.CriteriaValue, current)
		prg.EstimatedTimeToEarnDays = &days
	}
	return prg
}

// EarnedByPercentage returns the share of the institution's enrolled users holding the badge.
// It is 0 when nobody is enrolled or when a lookup fails.
func (eng *Engine) EarnedByPercentage(ctx context.Context, badgeID, institutionID string) int {
	enrs, err := eng.enrollments.QueryEnrollmentsByInstitution(ctx, institutionID)
	if err != nil {
		eng.log.Warn("querying institution enrollments", err, map[string]interface{}{"institution_id": institutionID})
		return 0
	}
	enrolled := enrollment.DistinctUsers(enrs)
	if len(enrolled) == 0 {
		return 0
	}

	sbs, err := eng.studentBadges.QueryStudentBadgesByBadge(ctx, badgeID, institutionID)
	if err != nil {
		eng.log.Warn("querying badge holders", err, map[string]interface{}{"badge_id": badgeID})
		return 0
	}
	holders := make(map[string]struct{}, len(sbs))
	for _, sb := range sbs {
		if _, ok := enrolled[sb.UserID]; ok {
			holders[sb.UserID] = struct{}{}
		}
	}

	pct := int(math.Round(float64(len(holders)) / float64(len(enrolled)) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
