package service_test

import (
	"testing"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// DealServiceTestSuite defines the test suite for DealService
type DealServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockDealRepo    *mocks.MockDealRepositoryInterface
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockAccountRepo *mocks.MockAccountRepositoryInterface
	mockContactRepo *mocks.MockContactRepositoryInterface
	dealService     *service.DealService
	validator       *validator.Validate
}

// SetupTest sets up the test suite
func (suite *DealServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDealRepo = mocks.NewMockDealRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockAccountRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	suite.mockContactRepo = mocks.NewMockContactRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	refs := service.NewReferenceValidator(suite.mockUserRepo, suite.mockAccountRepo, suite.mockContactRepo)
	suite.dealService = service.NewDealService(suite.mockDealRepo, refs, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *DealServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// contactsInOrg builds n contacts belonging to orgID and returns them with their ids
func contactsInOrg(orgID uuid.UUID, n int) ([]models.Contact, []uuid.UUID) {
	contacts := make([]models.Contact, n)
	ids := make([]uuid.UUID, n)
	for i := range contacts {
		contacts[i] = models.Contact{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: orgID,
			FirstName:      "Contact",
			LastName:       "Person",
		}
		ids[i] = contacts[i].ID
	}
	return contacts, ids
}

func (suite *DealServiceTestSuite) validCreateRequest(orgID uuid.UUID) (*service.CreateDealRequest, *models.User, *models.Account, []models.Contact) {
	owner := userInOrg(orgID, models.UserRoleMember)
	account := &models.Account{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID, Name: "Acme"}
	contacts, contactIDs := contactsInOrg(orgID, 2)

	req := &service.CreateDealRequest{
		Name:       "Acme Expansion",
		OwnerID:    owner.ID,
		AccountID:  account.ID,
		ContactIDs: contactIDs,
		Value:      &service.MoneyRequest{Amount: 250000, Currency: "USD"},
	}
	return req, owner, account, contacts
}

// TestCreateDeal tests the happy path with all references resolving in-org
func (suite *DealServiceTestSuite) TestCreateDeal() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, account, contacts := suite.validCreateRequest(orgID)

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(req.ContactIDs).Return(contacts, nil).Times(1)
	suite.mockDealRepo.EXPECT().GetByName(req.Name).Return(nil, gorm.ErrRecordNotFound).Times(1)
	suite.mockDealRepo.EXPECT().
		Create(gomock.Any(), contacts).
		DoAndReturn(func(deal *models.Deal, _ []models.Contact) error {
			deal.ID = uuid.New()
			deal.Contacts = contacts
			return nil
		}).
		Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), req.Name, response.Name)
	assert.Equal(suite.T(), string(models.DealStageNew), response.Stage)
	assert.Equal(suite.T(), int64(250000), response.Value.Amount)
	assert.Equal(suite.T(), "USD", response.Value.Currency)
	assert.Len(suite.T(), response.ContactIDs, 2)
	assert.Nil(suite.T(), response.ClosedAt)
}

// TestCreateDealReadOnlyDenied tests that read-only actors cannot create deals
func (suite *DealServiceTestSuite) TestCreateDealReadOnlyDenied() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleReadOnly)
	req, _, _, _ := suite.validCreateRequest(orgID)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAuthorized)
}

// TestCreateDealContactsCountBounds tests the upper contact bound once every
// reference has resolved in-org
func (suite *DealServiceTestSuite) TestCreateDealContactsCountBounds() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)

	req, owner, account, _ := suite.validCreateRequest(orgID)
	tooManyContacts, tooMany := contactsInOrg(orgID, models.MaxDealContacts+1)
	req.ContactIDs = tooMany

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(tooMany).Return(tooManyContacts, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrContactsCountInvalid)
}

// TestCreateDealReadOnlyOwner tests that a read-only user cannot be assigned as owner
func (suite *DealServiceTestSuite) TestCreateDealReadOnlyOwner() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleAdmin)
	req, owner, _, _ := suite.validCreateRequest(orgID)
	readOnly := models.UserRoleReadOnly
	owner.Role = &readOnly

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignedOwnerReadOnly)
}

// TestCreateDealContactsFromOtherOrg tests that foreign contacts are rejected
func (suite *DealServiceTestSuite) TestCreateDealContactsFromOtherOrg() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, account, contacts := suite.validCreateRequest(orgID)
	contacts[1].OrganizationID = uuid.New()

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(req.ContactIDs).Return(contacts, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrSomeContactsDifferentOrg)
}

// TestCreateDealContactsMissing tests the aggregate not-found verdict
func (suite *DealServiceTestSuite) TestCreateDealContactsMissing() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, account, contacts := suite.validCreateRequest(orgID)

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(req.ContactIDs).Return(contacts[:1], nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrSomeContactsNotFound)
}

// TestCreateDealDuplicateName tests global uniqueness of deal names
func (suite *DealServiceTestSuite) TestCreateDealDuplicateName() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, account, contacts := suite.validCreateRequest(orgID)

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(req.ContactIDs).Return(contacts, nil).Times(1)
	suite.mockDealRepo.EXPECT().GetByName(req.Name).Return(&models.Deal{Name: req.Name}, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDealExists)
}

// TestCreateDealInvalidCurrency tests rejection of unknown ISO 4217 codes
func (suite *DealServiceTestSuite) TestCreateDealInvalidCurrency() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, account, contacts := suite.validCreateRequest(orgID)
	req.Value = &service.MoneyRequest{Amount: 100, Currency: "ZZZ"}

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)
	suite.mockAccountRepo.EXPECT().GetByID(account.ID).Return(account, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(req.ContactIDs).Return(contacts, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrCurrencyNotValid)
}

// TestCreateDealMissingOwnerWinsOverBadCurrency tests that a dangling owner
// reference is reported even when the payload also carries an unknown currency
func (suite *DealServiceTestSuite) TestCreateDealMissingOwnerWinsOverBadCurrency() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, _, _ := suite.validCreateRequest(orgID)
	req.Value = &service.MoneyRequest{Amount: 100, Currency: "ZZZ"}

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(nil, gorm.ErrRecordNotFound).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignedOwnerNotFound)
}

// TestCreateDealOwnerFromOtherOrg tests that an owner affiliated elsewhere is
// rejected as a cross-organization reference
func (suite *DealServiceTestSuite) TestCreateDealOwnerFromOtherOrg() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	req, owner, _, _ := suite.validCreateRequest(orgID)
	foreignOrgID := uuid.New()
	owner.OrganizationID = &foreignOrgID

	suite.mockUserRepo.EXPECT().GetByID(owner.ID).Return(owner, nil).Times(1)

	response, err := suite.dealService.Create(actor, req)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAssignedOwnerDifferentOrg)
}

// TestUpdateDealTerminalStageStampsClosedAt tests that moving to WON sets ClosedAt
func (suite *DealServiceTestSuite) TestUpdateDealTerminalStageStampsClosedAt() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	deal := &models.Deal{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Name:           "Acme Expansion",
		Stage:          models.DealStageNegotiation,
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}
	stage := string(models.DealStageWon)

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)
	suite.mockDealRepo.EXPECT().Update(deal).Return(nil).Times(1)

	response, err := suite.dealService.Update(actor, deal.ID, &service.UpdateDealRequest{Stage: &stage})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(models.DealStageWon), response.Stage)
	assert.NotNil(suite.T(), response.ClosedAt)
}

// TestUpdateDealReopenClearsClosedAt tests that leaving a terminal stage
// drops the close timestamp
func (suite *DealServiceTestSuite) TestUpdateDealReopenClearsClosedAt() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	closedAt := time.Now().Add(-24 * time.Hour)
	deal := &models.Deal{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Name:           "Acme Expansion",
		Stage:          models.DealStageWon,
		ClosedAt:       &closedAt,
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}
	stage := string(models.DealStageNegotiation)

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)
	suite.mockDealRepo.EXPECT().Update(deal).Return(nil).Times(1)

	response, err := suite.dealService.Update(actor, deal.ID, &service.UpdateDealRequest{Stage: &stage})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(models.DealStageNegotiation), response.Stage)
	assert.Nil(suite.T(), response.ClosedAt)
}

// TestUpdateDealInvalidStage tests rejection of an unknown stage value
func (suite *DealServiceTestSuite) TestUpdateDealInvalidStage() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	deal := &models.Deal{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Stage:          models.DealStageNew,
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}
	stage := "FROZEN"

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)

	response, err := suite.dealService.Update(actor, deal.ID, &service.UpdateDealRequest{Stage: &stage})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidDealStage)
}

// TestUpdateDealCrossTenant tests that foreign deals cannot be updated
func (suite *DealServiceTestSuite) TestUpdateDealCrossTenant() {
	actor := userInOrg(uuid.New(), models.UserRoleAdmin)
	deal := &models.Deal{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: uuid.New(),
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}
	name := "Renamed"

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)

	response, err := suite.dealService.Update(actor, deal.ID, &service.UpdateDealRequest{Name: &name})

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDifferentOrganization)
}

// TestUpdateDealReplacesContacts tests that a supplied contact set replaces the
// previous one
func (suite *DealServiceTestSuite) TestUpdateDealReplacesContacts() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	contacts, contactIDs := contactsInOrg(orgID, 3)
	deal := &models.Deal{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Stage:          models.DealStageDiscovery,
		ValueCurrency:  "USD",
		ActualCurrency: "USD",
	}

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)
	suite.mockContactRepo.EXPECT().GetByIDs(contactIDs).Return(contacts, nil).Times(1)
	suite.mockDealRepo.EXPECT().Update(deal).Return(nil).Times(1)
	suite.mockDealRepo.EXPECT().ReplaceContacts(deal, contacts).Return(nil).Times(1)

	response, err := suite.dealService.Update(actor, deal.ID, &service.UpdateDealRequest{ContactIDs: contactIDs})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.ContactIDs, 3)
}

// TestDeleteDealDeniedForMember tests that only admins can delete deals
func (suite *DealServiceTestSuite) TestDeleteDealDeniedForMember() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleMember)
	deal := &models.Deal{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)

	err := suite.dealService.Delete(actor, deal.ID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAuthorized)
}

// TestDeleteDeal tests the admin delete path
func (suite *DealServiceTestSuite) TestDeleteDeal() {
	orgID := uuid.New()
	actor := userInOrg(orgID, models.UserRoleAdmin)
	deal := &models.Deal{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}

	suite.mockDealRepo.EXPECT().GetByID(deal.ID).Return(deal, nil).Times(1)
	suite.mockDealRepo.EXPECT().Delete(deal.ID).Return(int64(1), nil).Times(1)

	err := suite.dealService.Delete(actor, deal.ID)

	assert.NoError(suite.T(), err)
}

// TestGetDealNotFound tests the not-found path
func (suite *DealServiceTestSuite) TestGetDealNotFound() {
	actor := userInOrg(uuid.New(), models.UserRoleMember)
	id := uuid.New()

	suite.mockDealRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound).Times(1)

	response, err := suite.dealService.GetByID(actor, id)

	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDealNotFound)
}

// TestDealServiceTestSuite runs the test suite
func TestDealServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DealServiceTestSuite))
}
