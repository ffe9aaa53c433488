package leads

import (
	"regexp"
	"strings"

	"github.com/limaadvogados/leadrelay/pkg/models"
)

// Validation messages, in the order they are reported.
const (
	MsgNameRequired  = "name required"
	MsgEmailRequired = "email required"
	MsgInvalidEmail  = "invalid email"
	MsgInvalidPhone  = "invalid phone"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// area code, 4 or 5 digit prefix, 4 digit line
	phonePattern = regexp.MustCompile(`^\d{2}\d{4,5}\d{4}$`)
)

// ValidationResult lists every problem found in a form, not just the first.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks required fields and the email/phone formats of a lead form.
func Validate(input models.LeadFormInput) ValidationResult {
	errs := []string{}

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, MsgNameRequired)
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, MsgEmailRequired)
	} else if !IsValidEmail(input.Email) {
		errs = append(errs, MsgInvalidEmail)
	}

	if input.Phone != "" && !IsValidPhone(input.Phone) {
		errs = append(errs, MsgInvalidPhone)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// IsValidEmail matches the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts Brazilian landline and mobile numbers with area code,
// ignoring any punctuation.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(Digits(phone))
}
