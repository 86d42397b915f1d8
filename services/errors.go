package services

import (
	"errors"

	"github.com/benclube/membership-service/models"
)

// IsValidationError checks if an error is a client-input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, models.ErrValidation)
}

// IsNotFoundError checks if an error is a member or token lookup miss
func IsNotFoundError(err error) bool {
	return errors.Is(err, models.ErrMemberNotFound) || errors.Is(err, models.ErrTokenNotFound)
}

// IsIntegrityError checks if an error is a store integrity fault
func IsIntegrityError(err error) bool {
	return errors.Is(err, models.ErrStoreIntegrity)
}
