package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
	// ErrUserInactive is returned when a user is inactive
	ErrUserInactive = errors.New("user account is inactive")
	// ErrEmailAlreadyExists is returned when email is already registered
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrSessionNotFound is returned when a login session is not found
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a login session is expired
	ErrSessionExpired = errors.New("session expired")
)

// Service handles authentication operations
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.UserSessionRepository
	jwt         *JWTService
	log         *logrus.Entry
}

// NewService creates a new auth service
func NewService(userRepo repository.UserRepository, sessionRepo repository.UserSessionRepository, jwtSecret string) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwt:         NewJWTService(jwtSecret, "gabai"),
		log:         logrus.WithField("component", "auth"),
	}
}

// SignUp registers a new user
func (s *Service) SignUp(ctx context.Context, email, name, password string) (*models.User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         models.RoleUser,
		Settings:     make(models.JSONB),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and creates a login session
func (s *Service) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !user.IsActive {
		return nil, "", "", ErrUserInactive
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials
	}

	session := &models.UserSession{
		ID:               uuid.New(),
		UserID:           user.ID,
		ExpiresAt:        time.Now().Add(AccessTokenTTL),
		RefreshExpiresAt: time.Now().Add(RefreshTokenTTL),
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		CreatedAt:        time.Now(),
		LastActivity:     time.Now(),
	}

	accessToken, refreshToken, err := s.jwt.GenerateTokenPair(
		user.ID.String(),
		user.Email,
		user.Name,
		user.Role,
		session.ID.String(),
	)
	if err != nil {
		return nil, "", "", err
	}

	session.TokenHash = HashToken(accessToken)
	session.RefreshTokenHash = HashToken(refreshToken)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Log but don't fail login
		s.log.WithError(err).Warn("failed to update last login")
	}

	return user, accessToken, refreshToken, nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != "refresh" {
		return "", "", ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByRefreshTokenHash(ctx, HashToken(refreshToken))
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrSessionNotFound
		}
		return "", "", err
	}
	if time.Now().After(session.RefreshExpiresAt) {
		return "", "", ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return "", "", ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", ErrUserInactive
	}

	newAccess, newRefresh, err := s.jwt.GenerateTokenPair(
		user.ID.String(),
		user.Email,
		user.Name,
		user.Role,
		session.ID.String(),
	)
	if err != nil {
		return "", "", err
	}

	session.TokenHash = HashToken(newAccess)
	session.RefreshTokenHash = HashToken(newRefresh)
	session.ExpiresAt = time.Now().Add(AccessTokenTTL)
	session.RefreshExpiresAt = time.Now().Add(RefreshTokenTTL)

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", "", err
	}

	return newAccess, newRefresh, nil
}

// ValidateAccessToken validates an access token against its login session
func (s *Service) ValidateAccessToken(ctx context.Context, token string) (*models.User, *JWTClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}
	if claims.TokenType != "access" {
		return nil, nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil, ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, ErrInvalidClaims
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	return user, claims, nil
}

// Logout revokes the login session behind an access token
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return ErrInvalidClaims
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates a user's editable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatarURL, department string) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	if department != "" {
		user.Department = department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new one,
// revoking all other login sessions.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}
