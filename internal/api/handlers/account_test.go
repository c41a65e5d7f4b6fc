package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"
	"crm-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// AccountHandlerTestSuite defines the test suite for AccountHandler
type AccountHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockAccountServiceInterface
	http        *testutils.HTTPTestSuite
	actor       *models.User
}

// SetupTest sets up the test suite
func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockAccountServiceInterface(suite.ctrl)
	role := models.UserRoleMember
	orgID := uuid.New()
	suite.actor = &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		Email:          "actor@test.com",
		OrganizationID: &orgID,
		Role:           &role,
	}

	handler := NewAccountHandler(suite.mockService)
	suite.http = testutils.SetupHTTPTest()
	suite.http.Router.Use(func(c *gin.Context) {
		auth.SetCurrentUser(c, suite.actor)
	})
	suite.http.Router.POST("/accounts", handler.CreateAccount)
	suite.http.Router.GET("/accounts/:id", handler.GetAccount)
	suite.http.Router.GET("/accounts", handler.ListAccounts)
	suite.http.Router.PUT("/accounts/:id", handler.UpdateAccount)
	suite.http.Router.DELETE("/accounts/:id", handler.DeleteAccount)
}

// TearDownTest cleans up after each test
func (suite *AccountHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	return suite.http.MakeRequest(method, path, body)
}

// TestCreateAccount tests the created path
func (suite *AccountHandlerTestSuite) TestCreateAccount() {
	req := &service.CreateAccountRequest{Name: "Acme Corp"}
	response := &service.AccountResponse{ID: uuid.New(), Name: "Acme Corp"}

	suite.mockService.EXPECT().Create(suite.actor, gomock.Any()).Return(response, nil).Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", req)

	var created service.AccountResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &created)
	assert.Equal(suite.T(), response.ID, created.ID)
	assert.Equal(suite.T(), "Acme Corp", created.Name)
}

// TestGetAccountNotFound tests the 404 mapping
func (suite *AccountHandlerTestSuite) TestGetAccountNotFound() {
	id := uuid.New()
	suite.mockService.EXPECT().GetByID(suite.actor, id).Return(nil, apperrors.ErrAccountNotFound).Times(1)

	recorder := suite.request(http.MethodGet, "/accounts/"+id.String(), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "not found")
}

// TestGetAccountDifferentOrganization tests the 403 mapping for tenancy violations
func (suite *AccountHandlerTestSuite) TestGetAccountDifferentOrganization() {
	id := uuid.New()
	suite.mockService.EXPECT().GetByID(suite.actor, id).Return(nil, apperrors.ErrDifferentOrganization).Times(1)

	recorder := suite.request(http.MethodGet, "/accounts/"+id.String(), nil)

	assert.Equal(suite.T(), http.StatusForbidden, recorder.Code)
}

// TestCreateAccountDenied tests the 403 mapping for role denials
func (suite *AccountHandlerTestSuite) TestCreateAccountDenied() {
	suite.mockService.EXPECT().Create(suite.actor, gomock.Any()).Return(nil, apperrors.ErrNotAuthorized).Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", &service.CreateAccountRequest{Name: "Acme Corp"})

	assert.Equal(suite.T(), http.StatusForbidden, recorder.Code)
}

// TestCreateAccountConflict tests the 409 mapping
func (suite *AccountHandlerTestSuite) TestCreateAccountConflict() {
	suite.mockService.EXPECT().Create(suite.actor, gomock.Any()).Return(nil, apperrors.ErrOrganizationExists).Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", &service.CreateAccountRequest{Name: "Acme Corp"})

	assert.Equal(suite.T(), http.StatusConflict, recorder.Code)
}

// TestCreateAccountValidation tests the 400 mapping for domain validation errors
func (suite *AccountHandlerTestSuite) TestCreateAccountValidation() {
	suite.mockService.EXPECT().
		Create(suite.actor, gomock.Any()).
		Return(nil, apperrors.NewValidationError("size", "invalid account size")).
		Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", &service.CreateAccountRequest{Name: "Acme Corp"})

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

// TestCreateAccountFieldValidation tests the 400 mapping for struct-tag
// failures surfaced by the request validator
func (suite *AccountHandlerTestSuite) TestCreateAccountFieldValidation() {
	fieldErr := validator.New().Struct(&service.CreateAccountRequest{})
	suite.Require().Error(fieldErr)
	suite.mockService.EXPECT().
		Create(suite.actor, gomock.Any()).
		Return(nil, fmt.Errorf("validation failed: %w", fieldErr)).
		Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", &service.CreateAccountRequest{})

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	assert.NotContains(suite.T(), recorder.Body.String(), apperrors.GenericMessage)
}

// TestCreateAccountInfrastructureFailure tests that unexpected errors are
// hidden behind the generic message
func (suite *AccountHandlerTestSuite) TestCreateAccountInfrastructureFailure() {
	suite.mockService.EXPECT().
		Create(suite.actor, gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	recorder := suite.request(http.MethodPost, "/accounts", &service.CreateAccountRequest{Name: "Acme Corp"})

	assert.Equal(suite.T(), http.StatusInternalServerError, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), apperrors.GenericMessage)
	assert.NotContains(suite.T(), recorder.Body.String(), "connection refused")
}

// TestGetAccountInvalidUUID tests rejection of malformed path parameters
func (suite *AccountHandlerTestSuite) TestGetAccountInvalidUUID() {
	recorder := suite.request(http.MethodGet, "/accounts/not-a-uuid", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

// TestDeleteAccountNoContent tests the 204 path
func (suite *AccountHandlerTestSuite) TestDeleteAccountNoContent() {
	id := uuid.New()
	suite.mockService.EXPECT().Delete(suite.actor, id).Return(nil).Times(1)

	recorder := suite.request(http.MethodDelete, "/accounts/"+id.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestListAccountsPassesPagination tests that query parameters reach the service
func (suite *AccountHandlerTestSuite) TestListAccountsPassesPagination() {
	suite.mockService.EXPECT().
		List(suite.actor, 3, 50).
		Return(&service.AccountListResponse{Page: 3, PageSize: 50}, nil).
		Times(1)

	recorder := suite.request(http.MethodGet, "/accounts?page=3&page_size=50", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestMissingAuthentication tests that routes wired without the auth
// middleware report 401
func (suite *AccountHandlerTestSuite) TestMissingAuthentication() {
	router := gin.New()
	router.GET("/accounts", NewAccountHandler(suite.mockService).ListAccounts)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestAccountHandlerTestSuite runs the test suite
func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
