package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// nepaliPhoneRegex matches mobile numbers with an optional +977 country code.
	nepaliPhoneRegex = regexp.MustCompile(`^(\+?977)?9[78]\d{8}$`)

	// subdomainRegex matches valid DNS labels.
	subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// Required validates that a string is not blank.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

// MinLen validates a minimum string length.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)},
	}
}

// MaxLen validates a maximum string length.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)},
	}
}

// ValidEmail validates that a string is a parseable email address with a
// dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}
			domain := parts[1]
			return strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// OptionalEmail validates an email only when present. Blank values pass so
// nullable email columns stay null.
func OptionalEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return true
			}
			return ValidEmail(field, value).Check()
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// NepaliPhone validates a Nepali mobile number.
func NepaliPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return nepaliPhoneRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{Field: field, Message: "must be a valid Nepali phone number"},
	}
}

// NonNegative validates that a numeric value is zero or greater.
func NonNegative[N int | int64 | float64](field string, value N) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0
		},
		Error: ValidationError{Field: field, Message: "must not be negative"},
	}
}

// ValidSubdomain validates a DNS label usable as a tenant subdomain.
func ValidSubdomain(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return subdomainRegex.MatchString(value)
		},
		Error: ValidationError{Field: field, Message: "must be a valid subdomain label"},
	}
}

// NotReserved validates that a subdomain label is not in the reserved set.
func NotReserved(field, value string, reserved []string) Rule {
	return Rule{
		Check: func() bool {
			for _, label := range reserved {
				if strings.EqualFold(value, label) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "is reserved"},
	}
}
