package models

// UserRole represents the role of a user inside their organization
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleMember   UserRole = "MEMBER"
	UserRoleReadOnly UserRole = "READ_ONLY"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleMember, UserRoleReadOnly:
		return true
	}
	return false
}

// AccountSize defines the size bands an account can be classified into
type AccountSize string

const (
	AccountSizeSmall      AccountSize = "SMALL"
	AccountSizeMedium     AccountSize = "MEDIUM"
	AccountSizeLarge      AccountSize = "LARGE"
	AccountSizeEnterprise AccountSize = "ENTERPRISE"
)

// IsValid checks if the AccountSize is valid
func (s AccountSize) IsValid() bool {
	switch s {
	case AccountSizeSmall, AccountSizeMedium, AccountSizeLarge, AccountSizeEnterprise:
		return true
	}
	return false
}

// AccountPriority defines how important an account is to the organization
type AccountPriority string

const (
	AccountPriorityLow    AccountPriority = "LOW"
	AccountPriorityMedium AccountPriority = "MEDIUM"
	AccountPriorityHigh   AccountPriority = "HIGH"
)

// IsValid checks if the AccountPriority is valid
func (p AccountPriority) IsValid() bool {
	switch p {
	case AccountPriorityLow, AccountPriorityMedium, AccountPriorityHigh:
		return true
	}
	return false
}

// DealStage represents the pipeline stage of a deal. WON and LOST are terminal.
type DealStage string

const (
	DealStageNew         DealStage = "NEW"
	DealStageDiscovery   DealStage = "DISCOVERY"
	DealStageProposal    DealStage = "PROPOSAL"
	DealStageNegotiation DealStage = "NEGOTIATION"
	DealStageWon         DealStage = "WON"
	DealStageLost        DealStage = "LOST"
)

// IsValid checks if the DealStage is valid
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageNew, DealStageDiscovery, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

// IsTerminal reports whether the stage closes the deal
func (s DealStage) IsTerminal() bool {
	return s == DealStageWon || s == DealStageLost
}

// LeadStatus represents the qualification status of a lead
type LeadStatus string

const (
	LeadStatusNew                LeadStatus = "NEW_LEAD"
	LeadStatusAttemptedToContact LeadStatus = "ATTEMPTED_TO_CONTACT"
	LeadStatusContacted          LeadStatus = "CONTACTED"
	LeadStatusQualified          LeadStatus = "QUALIFIED"
	LeadStatusUnqualified        LeadStatus = "UNQUALIFIED"
)

// IsValid checks if the LeadStatus is valid
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusAttemptedToContact, LeadStatusContacted, LeadStatusQualified, LeadStatusUnqualified:
		return true
	}
	return false
}
