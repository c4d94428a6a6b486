package auth

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
)

// ValidateLogin checks presence of both credentials and names the
// missing field(s).
func ValidateLogin(email, password string) []string {
	var errs []string
	if email == "" {
		errs = append(errs, "Email is required.")
	}
	if password == "" {
		errs = append(errs, "Password is required.")
	}
	return errs
}

// Registration carries the submitted registration form fields.
type Registration struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	Zip       string
	Phone     string
	Email     string
	Password  string
}

// NormalizedZip strips embedded spaces, so "123 45" becomes "12345".
func (r Registration) NormalizedZip() string {
	return strings.ReplaceAll(r.Zip, " ", "")
}

// Validate returns the user-facing validation errors, empty when the
// registration is acceptable.
func (r Registration) Validate() []string {
	var errs []string
	if r.FirstName == "" || r.LastName == "" {
		errs = append(errs, "First and last name are required.")
	}
	if r.Street == "" || r.City == "" {
		errs = append(errs, "Address and city are required.")
	}
	if !zipRe.MatchString(r.NormalizedZip()) {
		errs = append(errs, "Zip code must be exactly 5 digits.")
	}
	if r.Phone == "" {
		errs = append(errs, "Phone number is required.")
	}
	if !emailRe.MatchString(r.Email) {
		errs = append(errs, "Invalid email.")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters.")
	}
	return errs
}
