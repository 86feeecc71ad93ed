package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core/access"
)

type accessAPI struct {
	gate *access.Gate
}

func registerAccessAPI(g *echo.Group, jwtAuth echo.MiddlewareFunc, gate *access.Gate) {
	api := accessAPI{gate: gate}

	course := g.Group("/institutions/:institution/courses/:course", jwtAuth)
	course.GET("/lessons/:lesson/access", api.lessonAccess)
	course.GET("/outline", api.courseOutline)
}

func (api accessAPI) lessonAccess(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	decision, err := api.gate.CanAccessLesson(
		ctx.Request().Context(),
		claims.Subject,
		ctx.Param("lesson"),
		ctx.Param("course"),
		ctx.Param("institution"),
	)
	if err != nil {
		return errors.Wrap(err, "checking lesson access")
	}
	return ctx.JSON(http.StatusOK, decision)
}

func (api accessAPI) courseOutline(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	outline, err := api.gate.CourseAccessMap(
		ctx.Request().Context(),
		claims.Subject,
		ctx.Param("course"),
		ctx.Param("institution"),
	)
	if err != nil {
		return errors.Wrap(err, "building course access map")
	}
	return ctx.JSON(http.StatusOK, outline)
}
