package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/domain/user"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockUserRepository mocks the user repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// UserServiceTestSuite provides a test suite for the user service
type UserServiceTestSuite struct {
	suite.Suite
	repo    *MockUserRepository
	service *UserService
	ctx     context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.repo = new(MockUserRepository)
	suite.service = NewUserService(suite.repo, zap.NewNop())
	suite.ctx = context.Background()
}

// TestRegister tests account registration
func (suite *UserServiceTestSuite) TestRegister() {
	suite.Run("ValidCommand_ShouldCreateAccount", func() {
		suite.SetupTest()
		suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*user.User")).Return(nil)

		dto, err := suite.service.Register(suite.ctx, RegisterCommand{
			Username: "maria",
			Password: "s3cret-password",
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "maria", dto.Username)
		assert.NotEqual(suite.T(), uuid.Nil, dto.ID)
		suite.repo.AssertExpectations(suite.T())
	})

	suite.Run("DuplicateUsername_ShouldReturnConflict", func() {
		suite.SetupTest()
		suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*user.User")).
			Return(user.ErrUsernameTaken)

		dto, err := suite.service.Register(suite.ctx, RegisterCommand{
			Username: "maria",
			Password: "s3cret-password",
		})

		assert.Nil(suite.T(), dto)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUsernameAlreadyExists))
	})

	suite.Run("ShortPassword_ShouldFailValidationWithoutPersisting", func() {
		suite.SetupTest()

		dto, err := suite.service.Register(suite.ctx, RegisterCommand{
			Username: "maria",
			Password: "short",
		})

		assert.Nil(suite.T(), dto)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		suite.repo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})
}

// TestLogin tests authentication, in particular that unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (suite *UserServiceTestSuite) TestLogin() {
	newStoredUser := func() *user.User {
		u, err := user.NewUser("maria", "s3cret-password")
		require.NoError(suite.T(), err)
		return u
	}

	suite.Run("ValidCredentials_ShouldSucceedAndRecordLogin", func() {
		suite.SetupTest()
		stored := newStoredUser()
		suite.repo.On("FindByUsername", suite.ctx, "maria").Return(stored, nil)
		suite.repo.On("Update", suite.ctx, stored).Return(nil)

		dto, err := suite.service.Login(suite.ctx, LoginCommand{
			Username: "maria",
			Password: "s3cret-password",
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "maria", dto.Username)
		assert.NotNil(suite.T(), stored.LastLoginAt())
		suite.repo.AssertExpectations(suite.T())
	})

	suite.Run("UnknownUsername_ShouldReturnInvalidCredentials", func() {
		suite.SetupTest()
		suite.repo.On("FindByUsername", suite.ctx, "nobody").Return(nil, user.ErrUserNotFound)

		dto, err := suite.service.Login(suite.ctx, LoginCommand{
			Username: "nobody",
			Password: "s3cret-password",
		})

		assert.Nil(suite.T(), dto)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})

	suite.Run("WrongPassword_ShouldReturnSameErrorAsUnknownUsername", func() {
		suite.SetupTest()
		stored := newStoredUser()
		suite.repo.On("FindByUsername", suite.ctx, "maria").Return(stored, nil)

		_, wrongPasswordErr := suite.service.Login(suite.ctx, LoginCommand{
			Username: "maria",
			Password: "wrong-password",
		})

		suite.repo.On("FindByUsername", suite.ctx, "nobody").Return(nil, user.ErrUserNotFound)
		_, unknownUserErr := suite.service.Login(suite.ctx, LoginCommand{
			Username: "nobody",
			Password: "wrong-password",
		})

		require.Error(suite.T(), wrongPasswordErr)
		require.Error(suite.T(), unknownUserErr)
		assert.Equal(suite.T(), wrongPasswordErr.Error(), unknownUserErr.Error())
	})

	suite.Run("LastLoginUpdateFailure_ShouldNotFailLogin", func() {
		suite.SetupTest()
		stored := newStoredUser()
		suite.repo.On("FindByUsername", suite.ctx, "maria").Return(stored, nil)
		suite.repo.On("Update", suite.ctx, stored).Return(assert.AnError)

		dto, err := suite.service.Login(suite.ctx, LoginCommand{
			Username: "maria",
			Password: "s3cret-password",
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "maria", dto.Username)
	})
}

// TestUserServiceTestSuite runs the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
