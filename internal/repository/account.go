package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByOrganizationID retrieves accounts belonging to an organization with pagination
func (r *AccountRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	if err := r.db.Model(&models.Account{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).Limit(limit).Offset(offset).Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// Update updates an account
func (r *AccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// Delete deletes an account and reports the number of rows removed
func (r *AccountRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Account{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// DeleteByOrganizationID deletes every account in the organization
func (r *AccountRepository) DeleteByOrganizationID(orgID uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Account{}, "organization_id = ?", orgID)
	return result.RowsAffected, result.Error
}
