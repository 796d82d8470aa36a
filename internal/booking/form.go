// Package booking checks a booking intent before any payment is attempted.
package booking

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "", ".", "")
)

// Form is a booking intent. It is never persisted.
type Form struct {
	EventID string `json:"eventId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// NormalizePhone drops whitespace and the usual separators.
func NormalizePhone(phone string) string {
	return phoneStrip.Replace(strings.TrimSpace(phone))
}

// ValidateForm checks every field and returns nil when the form is valid.
func ValidateForm(f Form) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}

	switch email := strings.TrimSpace(f.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email"
	}

	switch phone := strings.TrimSpace(f.Phone); {
	case phone == "":
		errs["phone"] = "Phone number is required"
	case !phonePattern.MatchString(NormalizePhone(phone)):
		errs["phone"] = "Please enter a valid 10-digit phone number"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
