package echoapi

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/user"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email,omitempty"`
	Role  user.Role `json:"role,omitempty"`
}

// UserID returns the token subject as a user ID.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, errors.Wrap(err, "parsing token subject")
	}
	return id, nil
}

// TokenService issues and validates signed, time-limited identity tokens.
// Tokens are stateless: validity is purely signature + expiry. There is no
// refresh and no pre-expiry revocation; re-login is the only renewal path.
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string

	nowFunc func() time.Time // mockable
}

func NewTokenService(conf *core.Config) *TokenService {
	return &TokenService{
		secret:     []byte(conf.SecretKey),
		expiration: conf.Server.JWTExpirationDelta,
		issuer:     conf.AppName,
		nowFunc:    time.Now,
	}
}

// Claims builds the claims for a fresh token for usr.
func (ts *TokenService) Claims(usr user.User) *Claims {
	now := ts.nowFunc()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiration)),
		},
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// Generate signs the claims into a compact JWT string.
func (ts *TokenService) Generate(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(ts.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Parse validates a raw token string. Expired and malformed tokens fail with
// distinct errors so the boundary can report accurate messages.
func (ts *TokenService) Parse(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(
		raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return ts.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return ts.nowFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}
	if !token.Valid {
		return nil, errTokenInvalid
	}
	return claims, nil
}

// getContextClaims returns the Claims set by the auth middleware.
func getContextClaims(ctx echo.Context) (*Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return claims, nil
	}
	return nil, errTokenMissing
}
