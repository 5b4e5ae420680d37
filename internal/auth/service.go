package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo           SubjectRepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger

	absentOnce sync.Once
	absentHash []byte
}

func NewService(repo SubjectRepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func (s *Service) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

func (s *Service) IssueToken(subject string, role internal.Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, internal.ErrMalformedClaims
	}
	return s.tokenGenerator.IssueToken(subject, role)
}

// ValidateToken accepts a token only for the role it was issued for, and only
// while its subject still exists in that role's table.
func (s *Service) ValidateToken(ctx context.Context, token string, expectedRole internal.Role) (*internal.Principal, error) {
	if token == "" {
		return nil, internal.ErrMissingToken
	}

	claims, err := s.tokenGenerator.ParseToken(token)
	if err != nil {
		return nil, err
	}

	if claims.Role != expectedRole {
		return nil, internal.ErrRoleMismatch
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, internal.ErrMalformedClaims
	}

	subject, err := s.repo.GetByID(ctx, claims.Role, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load token subject", err)
	}
	if subject == nil {
		return nil, internal.ErrUnknownSubject
	}

	return &internal.Principal{ID: subject.ID, Username: subject.Username, Role: claims.Role}, nil
}

func (s *Service) LoginAdmin(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	return s.login(ctx, internal.RoleAdmin, dto)
}

func (s *Service) LoginEmployee(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	return s.login(ctx, internal.RoleEmployee, dto)
}

func (s *Service) login(ctx context.Context, role internal.Role, dto LoginDTO) (*TokenResponse, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	subject, err := s.repo.GetByUsername(ctx, role, dto.Username)
	if err != nil {
		s.logger.Error("failed to look up login subject", "role", role, "error", err)
		return nil, internal.NewInternalError("failed to authenticate", err)
	}
	if subject == nil {
		// same bcrypt work as a wrong password so response time does not
		// reveal which usernames exist
		_ = bcrypt.CompareHashAndPassword(s.unknownSubjectHash(), []byte(dto.Password))
		s.logger.Warn("login failed: unknown username", "role", role, "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	if err := s.VerifyPassword(subject.PasswordHash, dto.Password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("stored password hash is unusable", "role", role, "subject_id", subject.ID, "error", err)
		}
		s.logger.Warn("login failed: wrong password", "role", role, "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(strconv.FormatInt(subject.ID, 10), role)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("login succeeded", "role", role, "subject_id", subject.ID)
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        role,
	}, nil
}

// unknownSubjectHash is a hash at the configured cost that no login matches.
func (s *Service) unknownSubjectHash() []byte {
	s.absentOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("unknown-subject-placeholder"), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to prepare placeholder hash", "error", err)
			return
		}
		s.absentHash = hash
	})
	return s.absentHash
}
