package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type dashboardApi struct {
	svc *school.Service
}

func registerDashboardAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := dashboardApi{svc: opts.SchoolSvc}

	manage := requireAction(opts.UserSvc, user.ActionSchoolManage)

	dg := g.Group("/dashboard", auth, manage)
	dg.GET("/stats", api.stats)
	dg.GET("/recent-activities", api.recentActivities)

	rg := g.Group("/reports", auth, manage)
	rg.GET("/student-performance", api.studentPerformance)
	rg.GET("/financial", api.financial)
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *dashboardApi) recentActivities(ctx echo.Context) error {
	activities, err := api.svc.RecentActivities(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, activities)
}

func (api *dashboardApi) studentPerformance(ctx echo.Context) error {
	report, err := api.svc.StudentPerformanceReport(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *dashboardApi) financial(ctx echo.Context) error {
	report, err := api.svc.FinancialReportFor(ctx.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}
