// Package user provides the application layer for user management
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/domain/user"
	"github.com/recetaria/v1/internal/ports/outbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// UserService implements user management use cases
type UserService struct {
	userRepo outbound.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo outbound.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.Named("user-service"),
	}
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginCommand contains user login data
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error) {
	s.logger.Info("Registering new user", zap.String("username", cmd.Username))

	newUser, err := user.NewUser(cmd.Username, cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, apperrors.NewUsernameAlreadyExistsError(cmd.Username)
		}
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID().String()),
		zap.String("username", newUser.Username()),
	)

	return s.entityToDTO(newUser), nil
}

// Login authenticates a user. Unknown usernames and wrong passwords yield
// the same error so the response never reveals which half failed.
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (*UserDTO, error) {
	s.logger.Info("User login attempt", zap.String("username", cmd.Username))

	userEntity, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	if err := userEntity.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", cmd.Username))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	userEntity.RecordLogin()
	if err := s.userRepo.Update(ctx, userEntity); err != nil {
		s.logger.Error("Failed to update last login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("user_id", userEntity.ID().String()),
	)

	return s.entityToDTO(userEntity), nil
}

func (s *UserService) entityToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		CreatedAt: u.CreatedAt(),
	}
}
