package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles every entity repository bound to one *gorm.DB handle.
// NewRepositories over a transaction handle yields a bundle whose writes all
// land in that transaction.
type Repositories struct {
	Organizations OrganizationRepositoryInterface
	Users         UserRepositoryInterface
	Accounts      AccountRepositoryInterface
	Contacts      ContactRepositoryInterface
	Deals         DealRepositoryInterface
	Leads         LeadRepositoryInterface
}

// NewRepositories creates a repository bundle bound to db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Organizations: NewOrganizationRepository(db),
		Users:         NewUserRepository(db),
		Accounts:      NewAccountRepository(db),
		Contacts:      NewContactRepository(db),
		Deals:         NewDealRepository(db),
		Leads:         NewLeadRepository(db),
	}
}

// TransactionManager wraps gorm transactions for multi-document units of work
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// InTransaction runs fn inside a database transaction. Any error from fn
// rolls the whole unit back and is returned unchanged.
func (m *TransactionManager) InTransaction(fn func(repos *Repositories) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
