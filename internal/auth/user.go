package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*LoginResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetActiveUser(ctx context.Context, userID int64) (*User, error)
}

type RepositoryAPI interface {
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
	GetActiveUser(ctx context.Context, userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(u *User) (string, error)
	GenerateRefreshToken(u *User) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// User is the authenticated caller placed in the request context.
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     role.Role `json:"role"`
}

// HasRole reports whether the user holds one of roles. Superadmin holds every role.
func (u *User) HasRole(roles ...role.Role) bool {
	if u == nil {
		return false
	}
	return u.Role.IsSuperadmin() || u.Role.In(roles...)
}

// Credentials is what the login flow needs from storage.
type Credentials struct {
	User         User
	PasswordHash string
	IsActive     bool
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Role     role.Role `json:"role"`
	Type     string    `json:"typ"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
