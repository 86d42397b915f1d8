package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/benclube/membership-service/config"
	"gorm.io/gorm"
)

// Member type constants (not configurable defaults live in config.DefaultEnums)
const (
	MemberTypeOwner     = "owner"
	MemberTypeAffiliate = "affiliate"
)

// Member status constants. The stored status is an administrative fact;
// the effective status shown to any surface comes from DisplayStatus.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
	StatusExpired  = "expired"
)

// Enum configuration (loaded from YAML config file)
var (
	enumConfig     *config.MembershipEnums
	enumConfigOnce sync.Once
)

// SetEnumConfig sets the enum configuration (called at service startup)
func SetEnumConfig(enums *config.MembershipEnums) {
	enumConfigOnce.Do(func() {
		enumConfig = enums
	})
}

// GetEnumConfig returns the current enum configuration
func GetEnumConfig() *config.MembershipEnums {
	return enumConfig
}

// Member represents a registered member (owner or affiliate) in the registry
type Member struct {
	// Primary Key. Distinct from the QR token: the token is a capability
	// handed to scanners, the ID is the internal record identity.
	MemberID string `gorm:"primaryKey;column:member_id;type:varchar(255)" json:"memberId"`

	// Personal fields
	FullName       string  `gorm:"column:full_name;type:varchar(255);not null" json:"fullName"`
	CpfDni         string  `gorm:"column:cpf_dni;type:varchar(50);not null;index:idx_members_cpf_dni" json:"cpfDni"`
	ContractNumber string  `gorm:"column:contract_number;type:varchar(50)" json:"contractNumber,omitempty"`
	Email          *string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Phone          *string `gorm:"column:phone;type:varchar(50)" json:"phone,omitempty"`
	BirthDate      *time.Time `gorm:"column:birth_date" json:"birthDate,omitempty"`
	Profession     string  `gorm:"column:profession;type:varchar(255)" json:"profession,omitempty"`
	Agent          string  `gorm:"column:agent;type:varchar(255)" json:"agent,omitempty"`
	Referral       *string `gorm:"column:referral;type:varchar(255)" json:"referral,omitempty"`

	// Address breakdown (filled from the CEP lookup on the portal side)
	Address    *string `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	PostalCode string  `gorm:"column:postal_code;type:varchar(20)" json:"postalCode,omitempty"`
	District   string  `gorm:"column:district;type:varchar(255)" json:"district,omitempty"`
	City       string  `gorm:"column:city;type:varchar(255)" json:"city,omitempty"`
	State      string  `gorm:"column:state;type:varchar(5)" json:"state,omitempty"`

	// Membership fields
	MemberType     string     `gorm:"column:member_type;type:varchar(20);not null;index:idx_members_member_type" json:"memberType"`
	OwnerID        *string    `gorm:"column:owner_id;type:varchar(255);index:idx_members_owner_id" json:"ownerId,omitempty"`
	JoinDate       *time.Time `gorm:"column:join_date" json:"joinDate,omitempty"`
	ExpirationDate *time.Time `gorm:"column:expiration_date" json:"expirationDate,omitempty"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;index:idx_members_status" json:"status"`

	// Validation fields. The token is issued once and never reassigned.
	QRCodeToken      string     `gorm:"column:qr_code_token;type:varchar(255);not null;uniqueIndex:idx_members_qr_code_token" json:"qrCodeToken"`
	LastQRValidation *time.Time `gorm:"column:last_qr_validation" json:"lastQrValidation,omitempty"`

	// BaseModel provides CreatedAt/UpdatedAt
	BaseModel
}

// TableName sets the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// BeforeCreate hook to enforce defaults
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = StatusActive
	}
	return m.BaseModel.BeforeCreate(tx)
}

// DisplayStatus resolves the status every surface must display or gate on.
// Expiration is a derived fact of time, not an administrative decision: a
// record whose expiration date has passed resolves to expired regardless of
// the stored status, even if no sweep has rewritten the row. A member whose
// expiration date equals now exactly is not yet expired (strict less-than),
// and a nil expiration date never auto-expires.
//
// Pure function of (member, now); now is passed explicitly so callers stay
// deterministic and testable.
func (m *Member) DisplayStatus(now time.Time) string {
	if m.ExpirationDate != nil && m.ExpirationDate.Before(now) {
		return StatusExpired
	}
	return m.Status
}

// StatusLabel returns the display label for a resolved status, using the
// enum configuration when loaded and the defaults otherwise
func StatusLabel(status string) string {
	if enumConfig != nil {
		return enumConfig.LabelFor(status)
	}
	if label, ok := config.DefaultEnums.StatusLabels[status]; ok {
		return label
	}
	return status
}

// Validate performs validation checks matching the database constraints.
// Uses enum configuration if available, otherwise falls back to default constants.
func (m *Member) Validate() error {
	if m.FullName == "" {
		return fmt.Errorf("%w: fullName is required", ErrValidation)
	}
	if m.CpfDni == "" {
		return fmt.Errorf("%w: cpfDni is required", ErrValidation)
	}

	if enumConfig != nil {
		if !enumConfig.IsValidMemberType(m.MemberType) {
			return fmt.Errorf("%w: invalid memberType: %s", ErrValidation, m.MemberType)
		}
	} else if m.MemberType != MemberTypeOwner && m.MemberType != MemberTypeAffiliate {
		return fmt.Errorf("%w: invalid memberType: %s (must be %s or %s)", ErrValidation, m.MemberType, MemberTypeOwner, MemberTypeAffiliate)
	}

	if m.Status != "" {
		if enumConfig != nil {
			if !enumConfig.IsValidStatus(m.Status) {
				return fmt.Errorf("%w: invalid status: %s", ErrValidation, m.Status)
			}
		} else if !contains([]string{StatusActive, StatusInactive, StatusPending, StatusExpired}, m.Status) {
			return fmt.Errorf("%w: invalid status: %s", ErrValidation, m.Status)
		}
	}

	// An affiliate must point back at exactly one owner; an owner must not
	if m.MemberType == MemberTypeAffiliate && (m.OwnerID == nil || *m.OwnerID == "") {
		return fmt.Errorf("%w: ownerId is required for affiliates", ErrValidation)
	}
	if m.MemberType == MemberTypeOwner && m.OwnerID != nil {
		return fmt.Errorf("%w: ownerId must be empty for owners", ErrValidation)
	}

	return nil
}

// contains checks if a string slice contains a value.
// Used only for fallback validation when config is not available.
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
