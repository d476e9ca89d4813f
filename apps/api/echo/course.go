package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type courseApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := courseApi{svc: opts.SchoolSvc, validate: opts.Validate}

	cg := g.Group("/courses", auth, requireAction(opts.UserSvc, user.ActionSchoolManage))
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.get)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.delete)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAllCourses(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var nc school.NewCourse
	if err := ctx.Bind(&nc); err != nil {
		return err
	}
	if err := nc.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.CreateCourse(ctx.Request().Context(), nc)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Curso creado exitosamente",
		"course":  c,
	})
}

func (api *courseApi) get(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	c, err := api.svc.GetCourseByID(ctx.Request().Context(), id)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var uc school.UpdateCourse
	if err = ctx.Bind(&uc); err != nil {
		return err
	}
	if err = uc.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.UpdateCourse(ctx.Request().Context(), id, uc)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Curso actualizado exitosamente",
		"course":  c,
	})
}

func (api *courseApi) delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err = api.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Curso eliminado exitosamente"})
}
