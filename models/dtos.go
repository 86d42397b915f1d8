package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MemberFields carries the client-supplied fields for one member record in
// a registration request. Dates use the 2006-01-02 layout (portal date inputs).
type MemberFields struct {
	FullName       string  `json:"fullName"`
	CpfDni         string  `json:"cpfDni"`
	ContractNumber string  `json:"contractNumber,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	BirthDate      *string `json:"birthDate,omitempty"`
	Profession     string  `json:"profession,omitempty"`
	Agent          string  `json:"agent,omitempty"`
	Referral       *string `json:"referral,omitempty"`
	Address        *string `json:"address,omitempty"`
	PostalCode     string  `json:"postalCode,omitempty"`
	District       string  `json:"district,omitempty"`
	City           string  `json:"city,omitempty"`
	State          string  `json:"state,omitempty"`
	JoinDate       *string `json:"joinDate,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
}

// RegisterMemberRequest creates one owner and zero or more affiliates as a
// single unit
type RegisterMemberRequest struct {
	Owner      MemberFields   `json:"owner"`
	Affiliates []MemberFields `json:"affiliates,omitempty"`
}

// Validate rejects violated preconditions before any write reaches the store
func (r *RegisterMemberRequest) Validate() error {
	if r.Owner.FullName == "" {
		return fmt.Errorf("%w: owner fullName is required", ErrValidation)
	}
	if r.Owner.CpfDni == "" {
		return fmt.Errorf("%w: owner cpfDni is required", ErrValidation)
	}
	for i, aff := range r.Affiliates {
		if aff.FullName == "" {
			return fmt.Errorf("%w: affiliate %d fullName is required", ErrValidation, i)
		}
		if aff.CpfDni == "" {
			return fmt.Errorf("%w: affiliate %d cpfDni is required", ErrValidation, i)
		}
	}
	return nil
}

// UpdateMemberRequest carries a partial administrative update. The QR token
// and member type are immutable and intentionally absent.
type UpdateMemberRequest struct {
	FullName       *string `json:"fullName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	PostalCode     *string `json:"postalCode,omitempty"`
	District       *string `json:"district,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	Status         *string `json:"status,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
}

// MemberResponse is the member representation returned by every surface.
// Status is always the resolved display status, never the raw stored value.
type MemberResponse struct {
	MemberID         string           `json:"memberId"`
	FullName         string           `json:"fullName"`
	CpfDni           string           `json:"cpfDni"`
	ContractNumber   string           `json:"contractNumber,omitempty"`
	Email            *string          `json:"email,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	BirthDate        *string          `json:"birthDate,omitempty"`
	Profession       string           `json:"profession,omitempty"`
	Agent            string           `json:"agent,omitempty"`
	Referral         *string          `json:"referral,omitempty"`
	Address          *string          `json:"address,omitempty"`
	PostalCode       string           `json:"postalCode,omitempty"`
	District         string           `json:"district,omitempty"`
	City             string           `json:"city,omitempty"`
	State            string           `json:"state,omitempty"`
	MemberType       string           `json:"memberType"`
	OwnerID          *string          `json:"ownerId,omitempty"`
	JoinDate         *string          `json:"joinDate,omitempty"`
	ExpirationDate   *string          `json:"expirationDate,omitempty"`
	Status           string           `json:"status"`
	StatusLabel      string           `json:"statusLabel"`
	QRCodeToken      string           `json:"qrCodeToken"`
	LastQRValidation *string          `json:"lastQrValidation,omitempty"`
	Affiliates       []MemberResponse `json:"affiliates,omitempty"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

// NewMemberResponse builds the wire representation for a member, resolving
// the display status at now
func NewMemberResponse(m *Member, now time.Time) MemberResponse {
	resolved := m.DisplayStatus(now)
	return MemberResponse{
		MemberID:         m.MemberID,
		FullName:         m.FullName,
		CpfDni:           m.CpfDni,
		ContractNumber:   m.ContractNumber,
		Email:            m.Email,
		Phone:            m.Phone,
		BirthDate:        formatDate(m.BirthDate),
		Profession:       m.Profession,
		Agent:            m.Agent,
		Referral:         m.Referral,
		Address:          m.Address,
		PostalCode:       m.PostalCode,
		District:         m.District,
		City:             m.City,
		State:            m.State,
		MemberType:       m.MemberType,
		OwnerID:          m.OwnerID,
		JoinDate:         formatDate(m.JoinDate),
		ExpirationDate:   formatDate(m.ExpirationDate),
		Status:           resolved,
		StatusLabel:      StatusLabel(resolved),
		QRCodeToken:      m.QRCodeToken,
		LastQRValidation: formatTimestamp(m.LastQRValidation),
		CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        m.UpdatedAt.Format(time.RFC3339),
	}
}

// RegisterMemberResponse is returned by a successful registration
type RegisterMemberResponse struct {
	Owner      MemberResponse   `json:"owner"`
	Affiliates []MemberResponse `json:"affiliates,omitempty"`
}

// ListMembersResponse is the directory listing envelope
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}

// ValidationResponse is returned when a QR token resolves to a member
type ValidationResponse struct {
	Member      MemberResponse `json:"member"`
	Status      string         `json:"status"`
	StatusLabel string         `json:"statusLabel"`
	ValidatedAt string         `json:"validatedAt"`
}

// ScanResponse is one scan event in a member's history
type ScanResponse struct {
	ID        uuid.UUID `json:"id"`
	MemberID  string    `json:"memberId"`
	ScannedAt string    `json:"scannedAt"`
}

// ListScansResponse is the scan history envelope
type ListScansResponse struct {
	Scans []ScanResponse `json:"scans"`
	Total int            `json:"total"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
