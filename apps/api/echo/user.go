package echoapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/user"
)

type userApi struct {
	svc      *user.Service
	tokenSvc *TokenService
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := userApi{
		svc:      opts.UserSvc,
		tokenSvc: opts.TokenSvc,
		validate: opts.Validate,
	}

	ag := g.Group("/auth")
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)
	ag.GET("/profile", api.profile, auth)
	ag.GET("/verify", api.verify, auth)

	view := requireAction(api.svc, user.ActionUsersView)
	manage := requireAction(api.svc, user.ActionUsersManage)

	ug := g.Group("/users", auth)
	ug.GET("", api.query, view)
	ug.POST("", api.create, manage)
	ug.PUT("/:id", api.update, manage)
	ug.DELETE("/:id", api.delete, manage)
}

// register creates a self-service account. An omitted role defaults to profesor.
func (api *userApi) register(ctx echo.Context) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return err
	}
	if err := nu.Validate(api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), nu)
	if err != nil {
		return userHTTPError(err)
	}
	token, err := api.tokenSvc.Generate(api.tokenSvc.Claims(usr))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":      "Usuario registrado exitosamente",
		"access_token": token,
		"user":         usr,
	})
}

func (api *userApi) login(ctx echo.Context) error {
	var creds struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := ctx.Bind(&creds); err != nil {
		return err
	}
	if err := api.validate.Struct(&creds); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), creds.Email, creds.Password)
	if err != nil {
		return userHTTPError(err)
	}
	token, err := api.tokenSvc.Generate(api.tokenSvc.Claims(usr))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Login exitoso",
		"token":   token,
		"user":    usr,
	})
}

// profile returns the authenticated user. A valid token whose account has
// since been deleted yields a 404, not a 401.
func (api *userApi) profile(ctx echo.Context) error {
	usr, err := api.contextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) verify(ctx echo.Context) error {
	usr, err := api.contextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"valid": true,
		"user":  usr,
	})
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) create(ctx echo.Context) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return err
	}
	if err := nu.Validate(api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), nu)
	if err != nil {
		return userHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Usuario creado exitosamente",
		"user":    usr,
	})
}

func (api *userApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	origUsr, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return userHTTPError(err)
	}

	var uu user.UpdateUser
	if err = ctx.Bind(&uu); err != nil {
		return err
	}
	if err = uu.Validate(origUsr, api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Update(ctx.Request().Context(), id, uu)
	if err != nil {
		return userHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Usuario actualizado exitosamente",
		"user":    usr,
	})
}

func (api *userApi) delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	actorID, err := claims.UserID()
	if err != nil {
		return errTokenInvalid
	}

	if err = api.svc.Delete(ctx.Request().Context(), actorID, id); err != nil {
		return userHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Usuario eliminado exitosamente"})
}

// contextUser resolves the token claims to a live account.
func (api *userApi) contextUser(ctx echo.Context) (user.User, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	id, err := claims.UserID()
	if err != nil {
		return user.User{}, errTokenInvalid
	}
	usr, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return user.User{}, userHTTPError(err)
	}
	return usr, nil
}

// userHTTPError maps account service errors to HTTP responses.
func userHTTPError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return errUserNotFound
	case errors.Is(err, user.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, user.ErrAccountDisabled):
		return errAccountDisabled
	case errors.Is(err, user.ErrSelfDelete):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
