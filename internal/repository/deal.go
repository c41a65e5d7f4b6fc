package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealRepository handles database operations for deals, including the
// deal_contacts join table
type DealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create creates a new deal with its contact associations
func (r *DealRepository) Create(deal *models.Deal, contacts []models.Contact) error {
	deal.Contacts = contacts
	return r.db.Create(deal).Error
}

// GetByID retrieves a deal by ID with its contacts preloaded
func (r *DealRepository) GetByID(id uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Preload("Contacts").First(&deal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// GetByName retrieves a deal by name
func (r *DealRepository) GetByName(name string) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.First(&deal, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// GetByOrganizationID retrieves deals belonging to an organization with pagination
func (r *DealRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Deal, int64, error) {
	var deals []models.Deal
	var total int64

	if err := r.db.Model(&models.Deal{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Contacts").Where("organization_id = ?", orgID).Limit(limit).Offset(offset).Find(&deals).Error
	if err != nil {
		return nil, 0, err
	}

	return deals, total, nil
}

// Update updates a deal's own columns, leaving associations untouched
func (r *DealRepository) Update(deal *models.Deal) error {
	return r.db.Omit("Contacts").Save(deal).Error
}

// ReplaceContacts replaces the deal's contact associations
func (r *DealRepository) ReplaceContacts(deal *models.Deal, contacts []models.Contact) error {
	return r.db.Model(deal).Association("Contacts").Replace(contacts)
}

// RemoveContactFromAll removes a contact from every deal's contact list
func (r *DealRepository) RemoveContactFromAll(contactID uuid.UUID) error {
	return r.db.Exec(`DELETE FROM deal_contacts WHERE contact_id = ?`, contactID).Error
}

// UnassignOwner clears the owner from every deal owned by the given user,
// reporting how many deals were affected
func (r *DealRepository) UnassignOwner(ownerID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Deal{}).
		Where("owner_id = ?", ownerID).
		Update("owner_id", nil)
	return result.RowsAffected, result.Error
}

// Delete deletes a deal and its contact associations, reporting the number of
// deal rows removed
func (r *DealRepository) Delete(id uuid.UUID) (int64, error) {
	if err := r.db.Exec(`DELETE FROM deal_contacts WHERE deal_id = ?`, id).Error; err != nil {
		return 0, err
	}
	result := r.db.Delete(&models.Deal{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// DeleteByOrganizationID deletes every deal in the organization along with
// the join rows pointing at them
func (r *DealRepository) DeleteByOrganizationID(orgID uuid.UUID) (int64, error) {
	err := r.db.Exec(
		`DELETE FROM deal_contacts WHERE deal_id IN (SELECT id FROM deals WHERE organization_id = ?)`,
		orgID,
	).Error
	if err != nil {
		return 0, err
	}
	result := r.db.Delete(&models.Deal{}, "organization_id = ?", orgID)
	return result.RowsAffected, result.Error
}
