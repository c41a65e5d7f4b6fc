package service_test

import (
	"testing"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// ContactServiceTestSuite defines the test suite for ContactService
type ContactServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockContactRepo *mocks.MockContactRepositoryInterface
	mockAccountRepo *mocks.MockAccountRepositoryInterface
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockDealRepo    *mocks.MockDealRepositoryInterface
	mockTx          *mocks.MockTransactionManagerInterface
	contactService  *service.ContactService
	validator       *validator.Validate
}

// SetupTest sets up the test suite
func (suite *ContactServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockContactRepo = mocks.NewMockContactRepositoryInterface(suite.ctrl)
	suite.mockAccountRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockDealRepo = mocks.NewMockDealRepositoryInterface(suite.ctrl)
	suite.mockTx = mocks.NewMockTransactionManagerInterface(suite.ctrl)
	suite.validator = validator.New()

	refs := service.NewReferenceValidator(suite.mockUserRepo, suite.mockAccountRepo, suite.mockContactRepo)
	suite.contactService = service.NewContactService(suite.mockContactRepo, refs, suite.mockTx, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *ContactServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// expectTransaction makes InTransaction execute its callback against the mocks
func (suite *ContactServiceTestSuite) expectTransaction() {
	suite.mockTx.EXPECT().
		InTransaction(gomock.Any()).
		DoAndReturn(func(fn func(*repository.Repositories) error) error {
			return fn(&repository.Repositories{
				Contacts: suite.mockContactRepo,
				Deals:    suite.mockDealRepo,
			})
		}).
		Times(1)
}

// TestCreateContact tests the happy path including phone normalization
func (suite *ContactServiceTestSuite) TestCreateContact() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req := &service.CreateContactRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@acme.com",
		Phone:     "+1 415 555 2671",
	}

	suite.mockContactRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(contact *models.Contact) error {
			contact.ID = uuid.New()
			return nil
		}).
		Times(1)

	response, err := suite.contactService.Create(actor, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), orgID, response.OrganizationID)
	assert.Equal(suite.T(), "+14155552671", response.Phone)
}

// TestCreateContactInvalidPhone tests rejection of unparseable phone numbers
func (suite *ContactServiceTestSuite) TestCreateContactInvalidPhone() {
	actor := userInOrg(uuid.New(), models.UserRoleMember)
	req := &service.CreateContactRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Phone:     "not-a-number",
	}

	response, err := suite.contactService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrPhoneNumberNotValid)
}

// TestCreateContactWithForeignAccount tests that an account reference from
// another organization is rejected
func (suite *ContactServiceTestSuite) TestCreateContactWithForeignAccount() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	account := &models.Account{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: uuid.New()}
	req := &service.CreateContactRequest{
		AccountID: &account.ID,
		FirstName: "Jane",
		LastName:  "Smith",
	}

	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)

	response, err := suite.contactService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignedAccountDifferentOrg)
}

// TestCreateContactWithMissingAccount tests the account-not-found path
func (suite *ContactServiceTestSuite) TestCreateContactWithMissingAccount() {
	actor := userInOrg(uuid.New(), models.UserRoleMember)
	accountID := uuid.New()
	req := &service.CreateContactRequest{
		AccountID: &accountID,
		FirstName: "Jane",
		LastName:  "Smith",
	}

	suite.mockAccountRepo.EXPECT().GetByID(accountID).Return(nil, gorm.ErrRecordNotFound).Times(1)

	response, err := suite.contactService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignedAccountNotFound)
}

// TestUpdateContactPhoneNormalized tests that updated phones are stored in E.164
func (suite *ContactServiceTestSuite) TestUpdateContactPhoneNormalized() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	contact := &models.Contact{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		FirstName:      "Jane",
		LastName:       "Smith",
	}
	phone := "+44 20 7946 0958"

	suite.mockContactRepo.EXPECT().GetByID(contact.ID).Return(contact, nil).Times(1)
	suite.mockContactRepo.EXPECT().Update(contact).Return(nil).Times(1)

	response, err := suite.contactService.Update(actor, contact.ID, &service.UpdateContactRequest{Phone: &phone})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "+442079460958", response.Phone)
}

// TestUpdateContactCrossTenant tests that foreign contacts cannot be updated
func (suite *ContactServiceTestSuite) TestUpdateContactCrossTenant() {
	actor := userInOrg(uuid.New(), models.UserRoleAdmin)
	contact := &models.Contact{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: uuid.New()}
	name := "Janet"

	suite.mockContactRepo.EXPECT().GetByID(contact.ID).Return(contact, nil).Times(1)

	response, err := suite.contactService.Update(actor, contact.ID, &service.UpdateContactRequest{FirstName: &name})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDifferentOrganization)
}

// TestDeleteContactUnlinksDeals tests that deletion removes the contact from
// every deal in the same atomic unit
func (suite *ContactServiceTestSuite) TestDeleteContactUnlinksDeals() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleAdmin)
	contact := &models.Contact{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}

	suite.mockContactRepo.EXPECT().GetByID(contact.ID).Return(contact, nil).Times(1)
	suite.expectTransaction()
	suite.mockDealRepo.EXPECT().RemoveContactFromAll(contact.ID).Return(nil).Times(1)
	suite.mockContactRepo.EXPECT().Delete(contact.ID).Return(int64(1), nil).Times(1)

	err := suite.contactService.Delete(actor, contact.ID)

	assert.NoError(suite.T(), err)
}

// TestDeleteContactRace tests that a vanished row aborts the transaction
func (suite *ContactServiceTestSuite) TestDeleteContactRace() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleAdmin)
	contact := &models.Contact{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}

	suite.mockContactRepo.EXPECT().GetByID(contact.ID).Return(contact, nil).Times(1)
	suite.expectTransaction()
	suite.mockDealRepo.EXPECT().RemoveContactFromAll(contact.ID).Return(nil).Times(1)
	suite.mockContactRepo.EXPECT().Delete(contact.ID).Return(int64(0), nil).Times(1)

	err := suite.contactService.Delete(actor, contact.ID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDeleteFailed)
}

// TestDeleteContactDeniedForMember tests that only admins can delete contacts
func (suite *ContactServiceTestSuite) TestDeleteContactDeniedForMember() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	contact := &models.Contact{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}

	suite.mockContactRepo.EXPECT().GetByID(contact.ID).Return(contact, nil).Times(1)

	err := suite.contactService.Delete(actor, contact.ID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAuthorized)
}

// TestGetContactNotFound tests the not-found path
func (suite *ContactServiceTestSuite) TestGetContactNotFound() {
	actor := userInOrg(uuid.New(), models.UserRoleMember)
	id := uuid.New()

	suite.mockContactRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound).Times(1)

	response, err := suite.contactService.GetByID(actor, id)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrContactNotFound)
}

// TestContactServiceTestSuite runs the test suite
func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
