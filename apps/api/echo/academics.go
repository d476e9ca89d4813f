package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

// academicsApi serves class sessions, enrollments, attendance and grades.
type academicsApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerAcademicsAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := academicsApi{svc: opts.SchoolSvc, validate: opts.Validate}

	manage := requireAction(opts.UserSvc, user.ActionSchoolManage)

	cg := g.Group("/classes", auth, manage)
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass)

	eg := g.Group("/enrollments", auth, manage)
	eg.GET("", api.queryEnrollments)
	eg.POST("", api.createEnrollment)

	ag := g.Group("/attendance", auth, manage)
	ag.GET("", api.queryAttendance)
	ag.POST("", api.createAttendance)

	gg := g.Group("/grades", auth, manage)
	gg.GET("", api.queryGrades)
	gg.POST("", api.createGrade)
}

func (api *academicsApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.QueryAllClassSessions(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *academicsApi) createClass(ctx echo.Context) error {
	var nc school.NewClassSession
	if err := ctx.Bind(&nc); err != nil {
		return err
	}
	if err := nc.Validate(api.validate); err != nil {
		return err
	}

	cs, err := api.svc.CreateClassSession(ctx.Request().Context(), nc)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Clase creada exitosamente",
		"class":   cs,
	})
}

func (api *academicsApi) queryEnrollments(ctx echo.Context) error {
	enrollments, err := api.svc.QueryAllEnrollments(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *academicsApi) createEnrollment(ctx echo.Context) error {
	var ne school.NewEnrollment
	if err := ctx.Bind(&ne); err != nil {
		return err
	}
	if err := ne.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.CreateEnrollment(ctx.Request().Context(), ne)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":    "Matrícula creada exitosamente",
		"enrollment": e,
	})
}

func (api *academicsApi) queryAttendance(ctx echo.Context) error {
	records, err := api.svc.QueryAllAttendance(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *academicsApi) createAttendance(ctx echo.Context) error {
	var na school.NewAttendance
	if err := ctx.Bind(&na); err != nil {
		return err
	}
	if err := na.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.CreateAttendance(ctx.Request().Context(), na)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":    "Asistencia registrada exitosamente",
		"attendance": a,
	})
}

func (api *academicsApi) queryGrades(ctx echo.Context) error {
	grades, err := api.svc.QueryAllGrades(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *academicsApi) createGrade(ctx echo.Context) error {
	var ng school.NewGrade
	if err := ctx.Bind(&ng); err != nil {
		return err
	}
	if err := ng.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.CreateGrade(ctx.Request().Context(), ng)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Calificación registrada exitosamente",
		"grade":   g,
	})
}
