package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/distribution-admin/internal"
)

// Service is the main auth service with dependencies
type Service struct {
	repo   RepositoryAPI
	tokens TokenGeneratorAPI
	logger *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.repo.GetCredentials(ctx, dto.Username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(creds.PasswordHash, dto.Password); err != nil {
		s.logger.Warn("login failed: wrong password", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	if !creds.IsActive {
		s.logger.Warn("login failed: inactive user", "username", dto.Username)
		return nil, internal.ErrUserInactive
	}

	resp, err := s.issue(&creds.User)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", creds.User.ID, "role", int(creds.User.Role))
	return resp, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// reload so a role change or deactivation takes effect on refresh
	u, err := s.repo.GetActiveUser(ctx, claims.UserID)
	if err != nil {
		s.logger.Warn("refresh rejected: user not active", "user_id", claims.UserID, "error", err)
		return nil, internal.ErrUserInactive
	}

	return s.issue(u)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) GetActiveUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetActiveUser(ctx, userID)
}

func (s *Service) issue(u *User) (*LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return nil, internal.NewInternalError("Gagal membuat token", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(u)
	if err != nil {
		return nil, internal.NewInternalError("Gagal membuat token", err)
	}

	return &LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	}, nil
}
