package user

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/lvillarreal/educrm/core"
)

// Role is the closed set of staff roles. Role values are stored as-is in the
// database and in token claims; anything outside the enumeration is invalid.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleProfesor   Role = "profesor"
	RoleAsistente  Role = "asistente"
)

var AllRoles = []Role{RoleSuperadmin, RoleAdmin, RoleProfesor, RoleAsistente}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleProfesor, RoleAsistente:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is a staff identity. PasswordHash never crosses the API boundary.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

// SetPassword hashes pwd with a fresh random salt and stores the result.
// Two calls with the same password produce different hashes.
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword recomputes the hash with the salt embedded in PasswordHash
// and compares in constant time. A malformed stored hash fails verification,
// it never panics.
func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     Role   `json:"role" validate:"omitempty,role"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Email = core.CleanString(nu.Email)
	nu.Name = core.CleanString(nu.Name)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	if nu.Role == "" {
		nu.Role = RoleProfesor
	}
	return svc.checkEmailUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Zero values leave the original field untouched.
type UpdateUser struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Role     Role   `json:"role" validate:"omitempty,role"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc *Service) error {
	uu.Name = core.CleanString(uu.Name)
	if uu.Name == "" {
		uu.Name = origUsr.Name
	}
	uu.Email = core.CleanString(uu.Email)
	if uu.Email == "" {
		uu.Email = origUsr.Email
	}
	if uu.Role == "" {
		uu.Role = origUsr.Role
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	if uu.Email != origUsr.Email {
		return svc.checkEmailUniqueness(uu.Email, origUsr)
	}
	return nil
}

var (
	roleTag  = "role"
	roleText = "invalid role"
)

// RegisterValidators registers user-specific validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation checks that a provided role is in AllRoles.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
