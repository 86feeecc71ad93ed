package badge

import (
	"context"
	"net/mail"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/user"
)

const maxNextBadges = 3

type (
	Summary struct {
		TotalBadges          int              `json:"total_badges"`
		EarnedBadges         int              `json:"earned_badges"`
		CompletionPercentage int              `json:"completion_percentage"`
		TotalRewardPoints    int              `json:"total_reward_points"`
		EarnedByCategory     map[Category]int `json:"earned_by_category"`
		EarnedByRarity       map[Rarity]int   `json:"earned_by_rarity"`
	}

	// Report is a student's badge standing within an institution.
	Report struct {
		UserID        string     `json:"user_id"`
		InstitutionID string     `json:"institution_id"`
		Badges        []Progress `json:"badges"`
		Summary       Summary    `json:"summary"`
		NextBadges    []Progress `json:"next_badges"`
		GeneratedAt   time.Time  `json:"generated_at"` // UTC
	}

	ServiceDeps struct {
		Badges        Repository
		StudentBadges StudentBadgeRepository
		Users         user.Repository
		Engine        *Engine
		Mail          core.EmailService
		Validate      *validator.Validate
		Logger        core.Logger
	}

	Service struct {
		badges        Repository
		studentBadges StudentBadgeRepository
		users         user.Repository
		engine        *Engine
		mailSvc       core.EmailService
		validate      *validator.Validate
		log           core.Logger
	}
)

func NewService(deps ServiceDeps) *Service {
	return &Service{
		badges:        deps.Badges,
		studentBadges: deps.StudentBadges,
		users:         deps.Users,
		engine:        deps.Engine,
		mailSvc:       deps.Mail,
		validate:      deps.Validate,
		log:           deps.Logger,
	}
}

func checkIDs(userID, institutionID string) error {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(userID), "userID"),
		vala.StringNotEmpty(core.CleanString(institutionID), "institutionID"),
	).Check()
	if err != nil {
		return core.NewArgumentError(err.Error())
	}
	return nil
}

func (svc *Service) load(ctx context.Context, userID, institutionID string) ([]Badge, []StudentBadge, error) {
	all, err := svc.badges.QueryAllBadges(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying badges")
	}
	earned, err := svc.studentBadges.QueryStudentBadgesByUser(ctx, userID, institutionID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying earned badges")
	}
	return all, earned, nil
}

func (svc *Service) GenerateStudentReport(ctx context.Context, userID, institutionID string) (Report, error) {
	if err := checkIDs(userID, institutionID); err != nil {
		return Report{}, err
	}
	all, earned, err := svc.load(ctx, userID, institutionID)
	if err != nil {
		return Report{}, err
	}

	prgs := svc.engine.BuildProgress(ctx, all, earned, userID, institutionID)
	return Report{
		UserID:        userID,
		InstitutionID: institutionID,
		Badges:        prgs,
		Summary:       summarize(prgs),
		NextBadges:    nextBadges(prgs, maxNextBadges),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

func summarize(prgs []Progress) Summary {
	sum := Summary{
		TotalBadges:      len(prgs),
		EarnedByCategory: make(map[Category]int),
		EarnedByRarity:   make(map[Rarity]int),
	}
	for _, prg := range prgs {
		if !prg.IsEarned {
			continue
		}
		sum.EarnedBadges++
		sum.TotalRewardPoints += prg.RewardPoints
		sum.EarnedByCategory[prg.Category]++
		sum.EarnedByRarity[prg.Rarity]++
	}
	if sum.TotalBadges > 0 {
		sum.CompletionPercentage = ProgressPercentage(sum.TotalBadges, sum.EarnedBadges, false)
	}
	return sum
}

// nextBadges returns up to n unearned badges, closest to completion first.
func nextBadges(prgs []Progress, n int) []Progress {
	next := make([]Progress, 0, len(prgs))
	for _, prg := range prgs {
		if !prg.IsEarned {
			next = append(next, prg)
		}
	}
	sort.SliceStable(next, func(i, j int) bool {
		if next[i].ProgressPercentage != next[j].ProgressPercentage {
			return next[i].ProgressPercentage > next[j].ProgressPercentage
		}
		return estimate(next[i]) < estimate(next[j])
	})
	if len(next) > n {
		next = next[:n]
	}
	return next
}

func estimate(prg Progress) int {
	if prg.EstimatedTimeToEarnDays == nil {
		return 0
	}
	return *prg.EstimatedTimeToEarnDays
}

// AwardEarnedBadges awards every badge whose criteria the user reached but does not hold yet,
// then notifies the user by e-mail.
func (svc *Service) AwardEarnedBadges(ctx context.Context, userID, institutionID string) ([]StudentBadge, error) {
	if err := checkIDs(userID, institutionID); err != nil {
		return nil, err
	}
	all, earned, err := svc.load(ctx, userID, institutionID)
	if err != nil {
		return nil, err
	}

	awarded := make([]StudentBadge, 0)
	var awardedBadges []Badge
	for _, prg := range svc.engine.BuildProgress(ctx, all, earned, userID, institutionID) {
		if prg.IsEarned || prg.CurrentProgress < prg.Badge.CriteriaValue {
			continue
		}

		sb, err := NewStudentBadge(uuid.NewString(), userID, prg.Badge.ID, institutionID, time.Time{})
		if err != nil {
			return awarded, err
		}
		sb, err = svc.studentBadges.CreateStudentBadge(ctx, sb)
		if err != nil {
			if errors.Cause(err) == ErrExists {
				continue
			}
			return awarded, errors.Wrap(err, "awarding badge")
		}
		awarded = append(awarded, sb)
		awardedBadges = append(awardedBadges, prg.Badge)
	}

	if len(awardedBadges) > 0 {
		svc.notify(ctx, userID, awardedBadges)
	}
	return awarded, nil
}

type badgeEarnedData struct {
	Name         string
	BadgeName    string
	Requirement  string
	RewardTitle  string
	RewardPoints int
}

func (svc *Service) notify(ctx context.Context, userID string, badges []Badge) {
	usr, err := svc.users.GetUser(ctx, userID)
	if err != nil {
		svc.log.Warn("loading user to notify of earned badges", err, map[string]interface{}{"user_id": userID})
		return
	}
	if usr.Email == "" {
		return
	}

	msgs := make([]*core.EmailMessage, 0, len(badges))
	for _, bdg := range badges {
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "You earned a new badge!",
			TemplateName: "badge_earned",
			TemplateData: badgeEarnedData{
				Name:         usr.Name,
				BadgeName:    bdg.Name,
				Requirement:  RequirementDescription(bdg.CriteriaType, bdg.CriteriaValue),
				RewardTitle:  RewardTitle(bdg.CriteriaType, bdg.CriteriaValue),
				RewardPoints: RewardPoints(bdg.CriteriaType, bdg.CriteriaValue),
			},
		})
	}
	svc.mailSvc.SendMessages(msgs...)
}

// Create validates nb against the existing catalog and stores the new badge.
func (svc *Service) Create(ctx context.Context, nb NewBadge) (Badge, error) {
	existing, err := svc.badges.QueryAllBadges(ctx)
	if err != nil {
		return Badge{}, errors.Wrap(err, "querying badges")
	}
	if err = nb.Validate(svc.validate, existing); err != nil {
		return Badge{}, err
	}

	bdg, err := New(uuid.NewString(), nb.Name, nb.Description, nb.IconURL, nb.CriteriaType, nb.CriteriaValue)
	if err != nil {
		return Badge{}, err
	}
	return svc.badges.CreateBadge(ctx, bdg)
}

// EarnedByPercentage validates the ids and reports the share of enrolled users holding the badge.
func (svc *Service) EarnedByPercentage(ctx context.Context, badgeID, institutionID string) (int, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(core.CleanString(badgeID), "badgeID"),
		vala.StringNotEmpty(core.CleanString(institutionID), "institutionID"),
	).Check()
	if err != nil {
		return 0, core.NewArgumentError(err.Error())
	}
	if _, err = svc.badges.GetBadge(ctx, badgeID); err != nil {
		return 0, err
	}
	return svc.engine.EarnedByPercentage(ctx, badgeID, institutionID), nil
}
