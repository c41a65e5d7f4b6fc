package auth_test

import (
	"testing"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	authService  *auth.AuthService
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.authService = auth.NewAuthService(
		&auth.Config{JWTSecret: "test-secret", TokenExpiry: time.Hour},
		suite.mockUserRepo,
		validator.New(),
	)
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestRegister tests that registration hashes the password and creates an
// unaffiliated user
func (suite *AuthServiceTestSuite) TestRegister() {
	req := &auth.RegisterRequest{
		Email:     "new@test.com",
		Password:  "super-secret",
		FirstName: "New",
		LastName:  "User",
	}

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound).Times(1)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			user.ID = uuid.New()
			return nil
		}).
		Times(1)

	user, err := suite.authService.Register(req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), req.Email, user.Email)
	assert.Nil(suite.T(), user.OrganizationID)
	assert.Nil(suite.T(), user.Role)
	assert.NotEqual(suite.T(), req.Password, user.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
}

// TestRegisterDuplicateEmail tests that an existing email is rejected
func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	req := &auth.RegisterRequest{
		Email:     "taken@test.com",
		Password:  "super-secret",
		FirstName: "New",
		LastName:  "User",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{Email: req.Email}, nil).
		Times(1)

	user, err := suite.authService.Register(req)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

// TestLogin tests the happy path returning a bearer token
func (suite *AuthServiceTestSuite) TestLogin() {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Email:        "user@test.com",
		PasswordHash: string(hash),
	}

	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)

	response, err := suite.authService.Login(&auth.LoginRequest{Email: user.Email, Password: "super-secret"})

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), response.AccessToken)
	assert.Equal(suite.T(), "Bearer", response.TokenType)
	assert.Equal(suite.T(), int64(3600), response.ExpiresIn)
}

// TestLoginWrongPassword tests that a bad password yields the same error as an
// unknown email
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Email:        "user@test.com",
		PasswordHash: string(hash),
	}

	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)

	response, err := suite.authService.Login(&auth.LoginRequest{Email: user.Email, Password: "wrong"})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginUnknownEmail tests the indistinguishable unknown-email path
func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	suite.mockUserRepo.EXPECT().
		GetByEmail("nobody@test.com").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.authService.Login(&auth.LoginRequest{Email: "nobody@test.com", Password: "whatever"})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestJWTRoundTrip tests that generated tokens validate back to the same claims
func (suite *AuthServiceTestSuite) TestJWTRoundTrip() {
	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "user@test.com",
	}

	token, err := suite.authService.GenerateJWT(user)
	suite.Require().NoError(err)

	claims, err := suite.authService.ValidateJWT(token)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, claims.UserID)
	assert.Equal(suite.T(), user.Email, claims.Email)
	assert.Equal(suite.T(), "crm-backend", claims.Issuer)
	assert.Equal(suite.T(), user.ID.String(), claims.Subject)
}

// TestValidateJWTWrongSecret tests that a token signed with a different secret
// is rejected
func (suite *AuthServiceTestSuite) TestValidateJWTWrongSecret() {
	other := auth.NewAuthService(
		&auth.Config{JWTSecret: "other-secret", TokenExpiry: time.Hour},
		suite.mockUserRepo,
		validator.New(),
	)
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "user@test.com"}

	token, err := other.GenerateJWT(user)
	suite.Require().NoError(err)

	claims, err := suite.authService.ValidateJWT(token)

	assert.Nil(suite.T(), claims)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

// TestValidateJWTExpired tests that expired tokens are rejected
func (suite *AuthServiceTestSuite) TestValidateJWTExpired() {
	expired := auth.NewAuthService(
		&auth.Config{JWTSecret: "test-secret", TokenExpiry: -time.Hour},
		suite.mockUserRepo,
		validator.New(),
	)
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "user@test.com"}

	token, err := expired.GenerateJWT(user)
	suite.Require().NoError(err)

	claims, err := suite.authService.ValidateJWT(token)

	assert.Nil(suite.T(), claims)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

// TestValidateJWTGarbage tests that non-JWT input is rejected
func (suite *AuthServiceTestSuite) TestValidateJWTGarbage() {
	claims, err := suite.authService.ValidateJWT("not.a.token")

	assert.Nil(suite.T(), claims)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
