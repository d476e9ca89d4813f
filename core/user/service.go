package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/lvillarreal/educrm/core"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("this email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is inactive")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User, isActive *bool) (User, error)
		DeleteUserByID(ctx context.Context, id int) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, exclUsers...); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create persists a new active User with a hashed password and sends
// a welcome email. The raw password is never stored.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	role := nu.Role
	if role == "" {
		role = RoleProfesor
	}
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hi %s,\n\nYour account has been created with the %s role.", usr.Name, usr.Role),
	})
	return usr, nil
}

// Authenticate verifies the credentials for the given email.
// It returns ErrInvalidCredentials on unknown email or wrong password and
// ErrAccountDisabled for valid credentials on an inactive account.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return User{}, ErrAccountDisabled
	}
	return usr, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, email)
}

// Update applies a partial update. Zero-value fields are backfilled from the
// stored row so the repositories always receive a complete record.
func (svc *Service) Update(ctx context.Context, id int, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if uu.Email != "" {
		usr.Email = uu.Email
	}
	if uu.Name != "" {
		usr.Name = uu.Name
	}
	if uu.Role != "" {
		usr.Role = uu.Role
	}
	usr.PasswordHash = nil // only rewritten when a new password is provided
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(ctx, usr, uu.IsActive)
}

// Delete removes the user with the given id. An identity can never delete
// itself through this interface: actorID == id fails with ErrSelfDelete
// before the store is touched.
func (svc *Service) Delete(ctx context.Context, actorID, id int) error {
	if actorID == id {
		return ErrSelfDelete
	}
	return svc.repo.DeleteUserByID(ctx, id)
}

// SetPasswordByEmail resets the password of the account with the given email.
// Used by the admin CLI only.
func (svc *Service) SetPasswordByEmail(ctx context.Context, email, pwd string) error {
	usr, err := svc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = svc.repo.UpdateUser(ctx, usr, nil)
	return err
}
