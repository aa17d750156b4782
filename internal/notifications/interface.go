package notifications

import "github.com/validly/saas-validator/internal/models"

// Notifier defines the contract for completion notifications.
type Notifier interface {
	SendValidationComplete(email string, result *models.ValidationResult) error
}
