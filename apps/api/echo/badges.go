package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core/badge"
)

type badgeAPI struct {
	svc *badge.Service
}

func registerBadgeAPI(g *echo.Group, jwtAuth echo.MiddlewareFunc, svc *badge.Service) {
	api := badgeAPI{svc: svc}

	g.POST("/badges", api.badgeCreate, jwtAuth, adminMiddleware)

	inst := g.Group("/institutions/:institution/badges", jwtAuth)
	inst.GET("/report", api.studentReport)
	inst.POST("/award", api.awardEarned)
	inst.GET("/:badge/earned-by", api.earnedBy)
}

func (api badgeAPI) badgeCreate(ctx echo.Context) error {
	var nb badge.NewBadge
	if err := ctx.Bind(&nb); err != nil {
		return errors.Wrap(err, "binding data")
	}

	bdg, err := api.svc.Create(ctx.Request().Context(), nb)
	if err != nil {
		return errors.Wrap(err, "creating badge")
	}
	return ctx.JSON(http.StatusCreated, bdg)
}

func (api badgeAPI) studentReport(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	report, err := api.svc.GenerateStudentReport(ctx.Request().Context(), claims.Subject, ctx.Param("institution"))
	if err != nil {
		return errors.Wrap(err, "generating student report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api badgeAPI) awardEarned(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	awarded, err := api.svc.AwardEarnedBadges(ctx.Request().Context(), claims.Subject, ctx.Param("institution"))
	if err != nil {
		return errors.Wrap(err, "awarding earned badges")
	}
	return ctx.JSON(http.StatusOK, awarded)
}

type earnedByResponse struct {
	BadgeID    string `json:"badge_id"`
	Percentage int    `json:"percentage"`
}

func (api badgeAPI) earnedBy(ctx echo.Context) error {
	badgeID := ctx.Param("badge")
	pct, err := api.svc.EarnedByPercentage(ctx.Request().Context(), badgeID, ctx.Param("institution"))
	if err != nil {
		return errors.Wrap(err, "computing earned-by percentage")
	}
	return ctx.JSON(http.StatusOK, earnedByResponse{BadgeID: badgeID, Percentage: pct})
}
