package validation

import "regexp"

// Validation rule patterns
var (
	// UPI pattern: two uppercase letters followed by at least three digits,
	// e.g. BT001
	UPIPattern = `^[A-Z]{2}\d{3,}$`

	// Kenyan phone numbers in international format
	PhonePattern = `^\+254\d{9}$`

	// Institution registration numbers, e.g. REG123456
	RegistrationNoPattern = `^[A-Z]{2,5}\d{3,}$`

	// Receipt numbers, e.g. CAP/2024/003
	ReceiptNumberPattern = `^[A-Z]{2,5}/\d{4}/\d{3,}$`

	PasswordMinLength = 8
	NameMinLength     = 2
	NameMaxLength     = 100
)

// CompiledPatterns caches compiled patterns
var CompiledPatterns = struct {
	UPI            *regexp.Regexp
	Phone          *regexp.Regexp
	RegistrationNo *regexp.Regexp
	ReceiptNumber  *regexp.Regexp
}{
	UPI:            regexp.MustCompile(UPIPattern),
	Phone:          regexp.MustCompile(PhonePattern),
	RegistrationNo: regexp.MustCompile(RegistrationNoPattern),
	ReceiptNumber:  regexp.MustCompile(ReceiptNumberPattern),
}

// IsValidUPI reports whether s looks like a learner UPI.
func IsValidUPI(s string) bool {
	return CompiledPatterns.UPI.MatchString(s)
}

// IsValidPhone reports whether s is a phone number in international format.
func IsValidPhone(s string) bool {
	return CompiledPatterns.Phone.MatchString(s)
}

// IsValidReceiptNumber reports whether s looks like a capitation receipt
// number.
func IsValidReceiptNumber(s string) bool {
	return CompiledPatterns.ReceiptNumber.MatchString(s)
}

// IsValidRegistrationNo reports whether s looks like an institution
// registration number.
func IsValidRegistrationNo(s string) bool {
	return CompiledPatterns.RegistrationNo.MatchString(s)
}
