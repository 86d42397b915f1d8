package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benclube/membership-service/models"
	"github.com/benclube/membership-service/monitoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberService handles member registration, the directory listing and
// administrative updates
type MemberService struct {
	db *gorm.DB
}

// NewMemberService creates a new member service instance
func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// RegisterMember creates one owner and all requested affiliates as a single
// unit. The owner insert and the affiliate batch run inside one transaction
// so the visible outcome is all-or-nothing: either owner and every affiliate
// exist, or none do. Preconditions are rejected before any write.
func (s *MemberService) RegisterMember(ctx context.Context, req *models.RegisterMemberRequest) (*models.RegisterMemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	owner, err := buildMember(&req.Owner, models.MemberTypeOwner, nil, now)
	if err != nil {
		return nil, err
	}

	affiliates := make([]*models.Member, 0, len(req.Affiliates))
	for i := range req.Affiliates {
		aff, err := buildMember(&req.Affiliates[i], models.MemberTypeAffiliate, &owner.MemberID, now)
		if err != nil {
			return nil, err
		}
		affiliates = append(affiliates, aff)
	}

	start := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner: %w", err)
		}
		if len(affiliates) > 0 {
			if err := tx.Create(affiliates).Error; err != nil {
				return fmt.Errorf("failed to create affiliates: %w", err)
			}
		}
		return nil
	})
	monitoring.RecordDBLatency(ctx, "members", "register", time.Since(start))

	if err != nil {
		monitoring.RecordBusinessEvent(ctx, "member_registered", false)
		return nil, err
	}

	slog.Info("Registered member",
		"memberId", owner.MemberID,
		"affiliates", len(affiliates))
	monitoring.RecordBusinessEvent(ctx, "member_registered", true)

	response := &models.RegisterMemberResponse{
		Owner: models.NewMemberResponse(owner, now),
	}
	for _, aff := range affiliates {
		response.Affiliates = append(response.Affiliates, models.NewMemberResponse(aff, now))
	}
	return response, nil
}

// ListMembers retrieves the directory: all members ordered by name, with an
// optional case-insensitive substring filter across name, identity number
// and email
func (s *MemberService) ListMembers(ctx context.Context, query string) (*models.ListMembersResponse, error) {
	var members []models.Member

	dbQuery := s.db.WithContext(ctx).Model(&models.Member{})
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(full_name) LIKE ? OR cpf_dni LIKE ? OR LOWER(email) LIKE ?",
			pattern, "%"+query+"%", pattern,
		)
	}

	start := time.Now()
	err := dbQuery.Order("full_name ASC").Find(&members).Error
	monitoring.RecordDBLatency(ctx, "members", "list", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve members: %w", err)
	}

	now := time.Now().UTC()
	response := &models.ListMembersResponse{
		Members: make([]models.MemberResponse, len(members)),
		Total:   len(members),
	}
	for i := range members {
		response.Members[i] = models.NewMemberResponse(&members[i], now)
	}
	return response, nil
}

// GetMember retrieves one member by ID. When the member is an owner the
// response carries its affiliates, ordered by name.
func (s *MemberService) GetMember(ctx context.Context, memberID string) (*models.MemberResponse, error) {
	var member models.Member
	err := s.db.WithContext(ctx).First(&member, "member_id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to retrieve member: %w", err)
	}

	now := time.Now().UTC()
	response := models.NewMemberResponse(&member, now)

	if member.MemberType == models.MemberTypeOwner {
		var affiliates []models.Member
		err := s.db.WithContext(ctx).
			Where("owner_id = ?", member.MemberID).
			Order("full_name ASC").
			Find(&affiliates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve affiliates: %w", err)
		}
		for i := range affiliates {
			response.Affiliates = append(response.Affiliates, models.NewMemberResponse(&affiliates[i], now))
		}
	}

	return &response, nil
}

// UpdateMember applies a partial administrative update. The QR token and
// member type are immutable.
func (s *MemberService) UpdateMember(ctx context.Context, memberID string, req *models.UpdateMemberRequest) (*models.MemberResponse, error) {
	var member models.Member
	err := s.db.WithContext(ctx).First(&member, "member_id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to retrieve member: %w", err)
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, fmt.Errorf("%w: fullName cannot be empty", models.ErrValidation)
		}
		member.FullName = *req.FullName
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Address != nil {
		member.Address = req.Address
	}
	if req.PostalCode != nil {
		member.PostalCode = *req.PostalCode
	}
	if req.District != nil {
		member.District = *req.District
	}
	if req.City != nil {
		member.City = *req.City
	}
	if req.State != nil {
		member.State = *req.State
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.ExpirationDate != nil {
		if *req.ExpirationDate == "" {
			member.ExpirationDate = nil
		} else {
			expiration, err := parseDate(*req.ExpirationDate, "expirationDate")
			if err != nil {
				return nil, err
			}
			member.ExpirationDate = expiration
		}
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.db.WithContext(ctx).Save(&member).Error
	monitoring.RecordDBLatency(ctx, "members", "update", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	response := models.NewMemberResponse(&member, time.Now().UTC())
	return &response, nil
}

// DeactivateMember sets a member's stored status to inactive
func (s *MemberService) DeactivateMember(ctx context.Context, memberID string) (*models.MemberResponse, error) {
	inactive := models.StatusInactive
	return s.UpdateMember(ctx, memberID, &models.UpdateMemberRequest{Status: &inactive})
}

// buildMember converts client-supplied fields into a member row, issuing the
// record identity and the QR token. The token is a random UUID distinct from
// the primary key: opaque, unguessable, never reassigned.
func buildMember(fields *models.MemberFields, memberType string, ownerID *string, now time.Time) (*models.Member, error) {
	member := &models.Member{
		MemberID:       "mem_" + uuid.New().String(),
		FullName:       fields.FullName,
		CpfDni:         fields.CpfDni,
		ContractNumber: fields.ContractNumber,
		Email:          fields.Email,
		Phone:          fields.Phone,
		Profession:     fields.Profession,
		Agent:          fields.Agent,
		Referral:       fields.Referral,
		Address:        fields.Address,
		PostalCode:     fields.PostalCode,
		District:       fields.District,
		City:           fields.City,
		State:          fields.State,
		MemberType:     memberType,
		OwnerID:        ownerID,
		Status:         models.StatusActive,
		QRCodeToken:    uuid.New().String(),
	}

	if fields.BirthDate != nil && *fields.BirthDate != "" {
		birth, err := parseDate(*fields.BirthDate, "birthDate")
		if err != nil {
			return nil, err
		}
		member.BirthDate = birth
	}
	if fields.JoinDate != nil && *fields.JoinDate != "" {
		join, err := parseDate(*fields.JoinDate, "joinDate")
		if err != nil {
			return nil, err
		}
		member.JoinDate = join
	} else {
		join := now
		member.JoinDate = &join
	}
	if fields.ExpirationDate != nil && *fields.ExpirationDate != "" {
		expiration, err := parseDate(*fields.ExpirationDate, "expirationDate")
		if err != nil {
			return nil, err
		}
		member.ExpirationDate = expiration
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}
	return member, nil
}

// parseDate parses a 2006-01-02 date field, returning a validation error
// naming the field on bad input
func parseDate(value, field string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %s (expected YYYY-MM-DD)", models.ErrValidation, field, value)
	}
	t = t.UTC()
	return &t, nil
}
