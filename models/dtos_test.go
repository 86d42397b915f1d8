package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMemberRequest_Validate(t *testing.T) {
	valid := MemberFields{FullName: "Maria Silva", CpfDni: "12345678900"}

	t.Run("Owner alone is valid", func(t *testing.T) {
		req := &RegisterMemberRequest{Owner: valid}
		assert.NoError(t, req.Validate())
	})

	t.Run("Owner with affiliates is valid", func(t *testing.T) {
		req := &RegisterMemberRequest{
			Owner: valid,
			Affiliates: []MemberFields{
				{FullName: "Joao Silva", CpfDni: "11122233344"},
			},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("Owner missing full name", func(t *testing.T) {
		req := &RegisterMemberRequest{Owner: MemberFields{CpfDni: "12345678900"}}
		err := req.Validate()
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "owner fullName")
	})

	t.Run("Owner missing cpf/dni", func(t *testing.T) {
		req := &RegisterMemberRequest{Owner: MemberFields{FullName: "Maria Silva"}}
		err := req.Validate()
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "owner cpfDni")
	})

	t.Run("Affiliate missing fields names the index", func(t *testing.T) {
		req := &RegisterMemberRequest{
			Owner: valid,
			Affiliates: []MemberFields{
				{FullName: "Joao Silva", CpfDni: "11122233344"},
				{FullName: "Ana Silva"},
			},
		}
		err := req.Validate()
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "affiliate 1")
	})
}

func TestNewMemberResponse(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	expiration := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	member := &Member{
		MemberID:       "mem_abc",
		FullName:       "Maria Silva",
		CpfDni:         "12345678900",
		MemberType:     MemberTypeOwner,
		JoinDate:       &joined,
		ExpirationDate: &expiration,
		Status:         StatusActive,
		QRCodeToken:    "tok-123",
	}

	resp := NewMemberResponse(member, now)

	// The wire status is the resolved status, never the raw stored value
	assert.Equal(t, StatusExpired, resp.Status)
	assert.Equal(t, "Expirado", resp.StatusLabel)
	assert.Equal(t, "mem_abc", resp.MemberID)
	assert.Equal(t, "tok-123", resp.QRCodeToken)

	require.NotNil(t, resp.JoinDate)
	assert.Equal(t, "2025-01-01", *resp.JoinDate)
	require.NotNil(t, resp.ExpirationDate)
	assert.Equal(t, "2026-01-01", *resp.ExpirationDate)
	assert.Nil(t, resp.BirthDate)
	assert.Nil(t, resp.LastQRValidation)
}
