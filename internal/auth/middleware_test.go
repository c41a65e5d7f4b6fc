package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	"crm-backend/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AuthMiddlewareTestSuite defines the test suite for the authentication middleware
type AuthMiddlewareTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	authService  *auth.AuthService
	router       *gin.Engine
}

// SetupTest sets up the test suite
func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.authService = auth.NewAuthService(
		&auth.Config{JWTSecret: "test-secret", TokenExpiry: time.Hour},
		suite.mockUserRepo,
		validator.New(),
	)

	middleware := auth.NewAuthMiddleware(suite.authService, suite.mockUserRepo)
	suite.router = gin.New()
	suite.router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
}

// TearDownTest cleans up after each test
func (suite *AuthMiddlewareTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthMiddlewareTestSuite) request(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)
	return recorder
}

// TestRequireAuthSuccess tests that a valid token loads the user into context
func (suite *AuthMiddlewareTestSuite) TestRequireAuthSuccess() {
	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "user@test.com",
	}
	token, err := suite.authService.GenerateJWT(user)
	suite.Require().NoError(err)

	suite.mockUserRepo.EXPECT().GetByID(user.ID).Return(user, nil).Times(1)

	recorder := suite.request("Bearer " + token)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), user.Email)
}

// TestRequireAuthMissingHeader tests rejection when no header is present
func (suite *AuthMiddlewareTestSuite) TestRequireAuthMissingHeader() {
	recorder := suite.request("")

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "Authorization header is required")
}

// TestRequireAuthMalformedHeader tests rejection of a non-bearer header
func (suite *AuthMiddlewareTestSuite) TestRequireAuthMalformedHeader() {
	recorder := suite.request("Basic dXNlcjpwYXNz")

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "Invalid authorization header format")
}

// TestRequireAuthBadToken tests rejection of an unparseable token
func (suite *AuthMiddlewareTestSuite) TestRequireAuthBadToken() {
	recorder := suite.request("Bearer not.a.token")

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "Invalid token")
}

// TestRequireAuthDeletedUser tests that a token for a vanished user is rejected
func (suite *AuthMiddlewareTestSuite) TestRequireAuthDeletedUser() {
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "gone@test.com"}
	token, err := suite.authService.GenerateJWT(user)
	suite.Require().NoError(err)

	suite.mockUserRepo.EXPECT().GetByID(user.ID).Return(nil, gorm.ErrRecordNotFound).Times(1)

	recorder := suite.request("Bearer " + token)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestAuthMiddlewareTestSuite runs the test suite
func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
