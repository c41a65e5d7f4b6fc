package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadRepository handles database operations for leads
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead
func (r *LeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByOrganizationID retrieves leads belonging to an organization with pagination
func (r *LeadRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	if err := r.db.Model(&models.Lead{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).Limit(limit).Offset(offset).Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Update updates a lead
func (r *LeadRepository) Update(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

// UnassignOwner clears the owner from every lead owned by the given user,
// reporting how many leads were affected
func (r *LeadRepository) UnassignOwner(ownerID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Lead{}).
		Where("owner_id = ?", ownerID).
		Update("owner_id", nil)
	return result.RowsAffected, result.Error
}

// Delete deletes a lead and reports the number of rows removed
func (r *LeadRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Lead{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// DeleteByOrganizationID deletes every lead in the organization
func (r *LeadRepository) DeleteByOrganizationID(orgID uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Lead{}, "organization_id = ?", orgID)
	return result.RowsAffected, result.Error
}
