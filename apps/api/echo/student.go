package echoapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type studentApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := studentApi{svc: opts.SchoolSvc, validate: opts.Validate}

	sg := g.Group("/students", auth, requireAction(opts.UserSvc, user.ActionSchoolManage))
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.get)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.delete)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAllStudents(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var ns school.NewStudent
	if err := ctx.Bind(&ns); err != nil {
		return err
	}
	if err := ns.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.CreateStudent(ctx.Request().Context(), ns)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Estudiante creado exitosamente",
		"student": st,
	})
}

func (api *studentApi) get(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	st, err := api.svc.GetStudentByID(ctx.Request().Context(), id)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var us school.UpdateStudent
	if err = ctx.Bind(&us); err != nil {
		return err
	}
	if err = us.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.UpdateStudent(ctx.Request().Context(), id, us)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Estudiante actualizado exitosamente",
		"student": st,
	})
}

func (api *studentApi) delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err = api.svc.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Estudiante eliminado exitosamente"})
}

// schoolHTTPError maps school service errors to HTTP responses.
func schoolHTTPError(err error) error {
	switch {
	case errors.Is(err, school.ErrStudentNotFound),
		errors.Is(err, school.ErrCourseNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, school.ErrStudentEmailExists):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
