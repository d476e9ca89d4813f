package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type paymentApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerPaymentAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := paymentApi{svc: opts.SchoolSvc, validate: opts.Validate}

	pg := g.Group("/payments", auth, requireAction(opts.UserSvc, user.ActionSchoolManage))
	pg.GET("", api.query)
	pg.POST("", api.create)
}

func (api *paymentApi) query(ctx echo.Context) error {
	payments, err := api.svc.QueryAllPayments(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *paymentApi) create(ctx echo.Context) error {
	var np school.NewPayment
	if err := ctx.Bind(&np); err != nil {
		return err
	}
	if err := np.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.CreatePayment(ctx.Request().Context(), np)
	if err != nil {
		return schoolHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Pago registrado exitosamente",
		"payment": p,
	})
}
