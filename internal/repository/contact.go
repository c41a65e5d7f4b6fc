package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for contacts
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByIDs retrieves the contacts matching the given ids. Missing ids are
// simply absent from the result; the caller decides what that means.
func (r *ContactRepository) GetByIDs(ids []uuid.UUID) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Where("id IN ?", ids).Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetByOrganizationID retrieves contacts belonging to an organization with pagination
func (r *ContactRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64

	if err := r.db.Model(&models.Contact{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).Limit(limit).Offset(offset).Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// Update updates a contact
func (r *ContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// Delete deletes a contact and reports the number of rows removed
func (r *ContactRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Contact{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// DeleteByOrganizationID deletes every contact in the organization
func (r *ContactRepository) DeleteByOrganizationID(orgID uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Contact{}, "organization_id = ?", orgID)
	return result.RowsAffected, result.Error
}
