// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// IsE164 reports whether the phone can be used as a WhatsApp destination.
func IsE164(phone string) bool {
	return strings.HasPrefix(phone, "+") && ValidatePhone(phone)
}

var cpfPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// ValidateCPF checks the Brazilian tax id format (digits only or punctuated).
func ValidateCPF(cpf string) bool {
	return cpfPattern.MatchString(strings.TrimSpace(cpf))
}
