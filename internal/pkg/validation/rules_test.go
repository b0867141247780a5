package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUPI(t *testing.T) {
	assert.True(t, IsValidUPI("BT001"))
	assert.True(t, IsValidUPI("BS123456"))
	assert.False(t, IsValidUPI("bt001"))
	assert.False(t, IsValidUPI("B001"))
	assert.False(t, IsValidUPI("BT01"))
	assert.False(t, IsValidUPI(""))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+254712345678"))
	assert.False(t, IsValidPhone("0712345678"))
	assert.False(t, IsValidPhone("+25571234567"))
	assert.False(t, IsValidPhone("+2547123456789"))
}

func TestIsValidRegistrationNo(t *testing.T) {
	assert.True(t, IsValidRegistrationNo("ECDE001"))
	assert.True(t, IsValidRegistrationNo("VT123"))
	assert.False(t, IsValidRegistrationNo("001"))
	assert.False(t, IsValidRegistrationNo("ecde001"))
}

func TestIsValidReceiptNumber(t *testing.T) {
	assert.True(t, IsValidReceiptNumber("CAP/2024/003"))
	assert.False(t, IsValidReceiptNumber("CAP-2024-003"))
	assert.False(t, IsValidReceiptNumber("CAP/24/003"))
}
