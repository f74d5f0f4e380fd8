// internal/pkg/validate/password.go
package validate

import "unicode"

// PasswordReport describes which strength requirements a candidate password
// meets. Callers surface the failed requirements to the user instead of a
// single opaque rejection.
type PasswordReport struct {
	Length    bool `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Special   bool `json:"special"`
}

// Valid reports whether every requirement is met.
func (r PasswordReport) Valid() bool {
	return r.Length && r.Uppercase && r.Lowercase && r.Numbers && r.Special
}

// Score returns the number of requirements met, 0 through 5.
func (r PasswordReport) Score() int {
	score := 0
	for _, met := range []bool{r.Length, r.Uppercase, r.Lowercase, r.Numbers, r.Special} {
		if met {
			score++
		}
	}
	return score
}

// Missing returns the names of the failed requirements in a fixed order.
func (r PasswordReport) Missing() []string {
	var missing []string
	if !r.Length {
		missing = append(missing, "length")
	}
	if !r.Uppercase {
		missing = append(missing, "uppercase")
	}
	if !r.Lowercase {
		missing = append(missing, "lowercase")
	}
	if !r.Numbers {
		missing = append(missing, "numbers")
	}
	if !r.Special {
		missing = append(missing, "special")
	}
	return missing
}

// Password scores a candidate password against the five strength
// requirements: at least 8 characters, one uppercase letter, one lowercase
// letter, one digit, and one special character.
func Password(password string) PasswordReport {
	report := PasswordReport{
		Length: len(password) >= 8,
	}

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			report.Uppercase = true
		case unicode.IsLower(char):
			report.Lowercase = true
		case unicode.IsNumber(char):
			report.Numbers = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			report.Special = true
		}
	}

	return report
}
