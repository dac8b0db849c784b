// Package contact validates and records contact form submissions.
package contact

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact form post. Company is optional.
type Submission struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Company string `json:"company,omitempty" form:"company"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ValidationError is a problem with the caller's input.
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

const (
	reasonMissing = "Missing required fields"
	reasonEmail   = "Invalid email address"
)

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Company = strings.TrimSpace(s.Company)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

// Validate reports a *ValidationError when a required field is blank or the
// email is not of the form local@domain.tld.
func (s Submission) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", s.Name},
		{"email", s.Email},
		{"subject", s.Subject},
		{"message", s.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Reason: reasonMissing, Fields: missing}
	}
	if !emailPattern.MatchString(strings.TrimSpace(s.Email)) {
		return &ValidationError{Reason: reasonEmail, Fields: []string{"email"}}
	}
	return nil
}
