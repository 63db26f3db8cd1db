package services

import (
	"context"
	"errors"
	"strings"

	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

// TokenIssuer signs identity tokens for authenticated users
type TokenIssuer interface {
	Issue(subjectID int, role models.UserRole) (string, error)
}

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     models.UserRole // empty defaults to attendee
}

// AuthService handles account registration and credential login
type AuthService struct {
	users      repositories.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService instance.
// A bcryptCost of zero uses bcrypt's default cost.
func NewAuthService(users repositories.UserRepository, tokens TokenIssuer, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account with a bcrypt hashed password
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleAttendee
	}
	if !role.IsValid() {
		return nil, validationError(ErrInvalidRole, map[string]string{
			"role": "must be one of: attendee organizer admin",
		})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(strings.TrimSpace(input.FullName), input.Email, hash, role)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, WrapInternal("failed to create user", err)
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login checks the credentials and returns a signed token.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", WrapInternal("failed to look up user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug("login rejected", zap.Int("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", WrapInternal("failed to issue token", err)
	}

	return token, nil
}
