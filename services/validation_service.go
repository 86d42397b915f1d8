package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benclube/membership-service/models"
	"github.com/benclube/membership-service/monitoring"
	"gorm.io/gorm"
)

// ValidationService resolves QR tokens to member records and appends scan
// events to the audit trail
type ValidationService struct {
	db *gorm.DB
}

// NewValidationService creates a new validation service instance
func NewValidationService(db *gorm.DB) *ValidationService {
	return &ValidationService{db: db}
}

// ValidateToken resolves an opaque QR token to its member and records the
// scan. An empty token short-circuits to not-found without touching the
// store. The store is queried exactly once, by exact token equality; a token
// bound to more than one member is a store integrity fault, never silently
// resolved to the first match. The scan event append (and the
// last-validation stamp) is best-effort: its failure is logged as a warning
// but never blocks a legitimate member from being validated.
func (s *ValidationService) ValidateToken(ctx context.Context, token string) (*models.ValidationResponse, error) {
	if token == "" {
		return nil, models.ErrTokenNotFound
	}

	var members []models.Member
	start := time.Now()
	err := s.db.WithContext(ctx).
		Where("qr_code_token = ?", token).
		Limit(2).
		Find(&members).Error
	monitoring.RecordDBLatency(ctx, "members", "token_lookup", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	switch len(members) {
	case 0:
		return nil, models.ErrTokenNotFound
	case 1:
		// expected
	default:
		slog.Error("QR token bound to multiple members", "token", token)
		return nil, fmt.Errorf("%w: token matches %d members", models.ErrStoreIntegrity, len(members))
	}

	member := &members[0]
	now := time.Now().UTC()

	s.recordScan(ctx, member, now)

	resolved := member.DisplayStatus(now)
	return &models.ValidationResponse{
		Member:      models.NewMemberResponse(member, now),
		Status:      resolved,
		StatusLabel: models.StatusLabel(resolved),
		ValidatedAt: now.Format(time.RFC3339),
	}, nil
}

// ListScans retrieves a member's scan history, newest first
func (s *ValidationService) ListScans(ctx context.Context, memberID string, limit, offset int) (*models.ListScansResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	var scans []models.QRScan
	var total int64

	query := s.db.WithContext(ctx).Model(&models.QRScan{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	if err := query.Order("scanned_at DESC").Limit(limit).Offset(offset).Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve scans: %w", err)
	}

	response := &models.ListScansResponse{
		Scans: make([]models.ScanResponse, len(scans)),
		Total: int(total),
	}
	for i, scan := range scans {
		response.Scans[i] = models.ScanResponse{
			ID:        scan.ID,
			MemberID:  scan.MemberID,
			ScannedAt: scan.ScannedAt.Format(time.RFC3339),
		}
	}
	return response, nil
}

// recordScan appends one scan event and stamps the member's last validation
// time. Failures degrade to a warning; the audit trail is cumulative and
// best-effort, and a missing scan row must not fail the validation itself.
func (s *ValidationService) recordScan(ctx context.Context, member *models.Member, now time.Time) {
	scan := &models.QRScan{
		MemberID:  member.MemberID,
		ScannedAt: now,
	}

	start := time.Now()
	err := s.db.WithContext(ctx).Create(scan).Error
	monitoring.RecordDBLatency(ctx, "qr_scans", "create", time.Since(start))
	if err != nil {
		slog.Warn("Failed to record QR scan event", "memberId", member.MemberID, "error", err)
		monitoring.RecordBusinessEvent(ctx, "qr_scan_recorded", false)
		return
	}

	stamp := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("member_id = ?", member.MemberID).
		Update("last_qr_validation", now).Error
	if stamp != nil {
		slog.Warn("Failed to stamp last QR validation", "memberId", member.MemberID, "error", stamp)
	} else {
		member.LastQRValidation = &now
	}

	monitoring.RecordBusinessEvent(ctx, "qr_scan_recorded", true)
}
