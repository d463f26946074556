package client

import (
	"fmt"
	"regexp"
	"strings"
)

// ===============================================
// Client Validation
// ===============================================

// ValidationConfig holds client-level validation rules.
type ValidationConfig struct {
	MaxNameLength    int
	MaxCompanyLength int
}

// DefaultValidationConfig returns the default client validation rules.
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxNameLength:    120,
		MaxCompanyLength: 120,
	}
}

// Validator performs business validation on client input.
type Validator struct {
	config       *ValidationConfig
	emailPattern *regexp.Regexp
}

// NewValidator creates a client validator.
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &Validator{
		config:       config,
		emailPattern: regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`),
	}
}

// ValidateCreate checks a create request.
func (v *Validator) ValidateCreate(req *CreateRequest) error {
	if err := v.validateName(req.Name); err != nil {
		return err
	}
	return v.ValidateEmail(req.Email)
}

// ValidateUpdate checks the provided fields of a partial update.
func (v *Validator) ValidateUpdate(req *UpdateRequest) error {
	if req.Name != nil {
		if err := v.validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := v.ValidateEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("invalid status %q (valid: %v)", *req.Status, ValidStatuses())
	}
	if req.Company != nil && len(*req.Company) > v.config.MaxCompanyLength {
		return fmt.Errorf("company exceeds %d characters", v.config.MaxCompanyLength)
	}
	return nil
}

// ValidateEmail checks basic email shape.
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !v.emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func (v *Validator) validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > v.config.MaxNameLength {
		return fmt.Errorf("name exceeds %d characters", v.config.MaxNameLength)
	}
	return nil
}
