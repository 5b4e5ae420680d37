package auth

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultAccessTokenTTL = 30 * time.Minute

type JWTTokenGenerator struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
}

func NewJWTTokenGenerator(secret string, ttl time.Duration, clock Clock) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &JWTTokenGenerator{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(clock.Now),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

func (j *JWTTokenGenerator) IssueToken(subject string, role internal.Role) (string, time.Time, error) {
	now := j.clock.Now()
	expiresAt := now.Add(j.ttl)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ParseToken verifies signature and expiry and returns the claims. Errors are
// the AppError sentinels from the internal package.
func (j *JWTTokenGenerator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, internal.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, internal.ErrInvalidSignature
		default:
			return nil, internal.ErrMalformedClaims.WithCause(err)
		}
	}
	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, internal.ErrMalformedClaims
	}
	return claims, nil
}
