package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

// Clock is injected so token lifetimes can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Claims carries the subject id in "sub" and the namespace it belongs to in "role".
type Claims struct {
	Role internal.Role `json:"role"`
	jwt.RegisteredClaims
}

// Subject is an admin or employee row seen through its credentials only.
type Subject struct {
	ID           int64
	Username     string
	PasswordHash string
}

type TokenGeneratorAPI interface {
	IssueToken(subject string, role internal.Role) (token string, expiresAt time.Time, err error)
	ParseToken(tokenString string) (*Claims, error)
}

// SubjectRepositoryAPI looks subjects up in the table that matches role.
// Both methods return nil, nil when no row matches.
type SubjectRepositoryAPI interface {
	GetByUsername(ctx context.Context, role internal.Role, username string) (*Subject, error)
	GetByID(ctx context.Context, role internal.Role, id int64) (*Subject, error)
}

type ServiceAPI interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(hash, plaintext string) error
	IssueToken(subject string, role internal.Role) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string, expectedRole internal.Role) (*internal.Principal, error)
	LoginAdmin(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	LoginEmployee(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
}
