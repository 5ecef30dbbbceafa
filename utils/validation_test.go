package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+5511999990000",
		"5511999990000",
		"+55 11 99999-0000",
		"(11) 99999-0000",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{
		"",
		"abc",
		"+0123456",
		"+55119999900001234567",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}

func TestIsE164(t *testing.T) {
	assert.True(t, IsE164("+5511999990000"))
	assert.False(t, IsE164("5511999990000"))
	assert.False(t, IsE164("+"))
}

func TestValidateCPF(t *testing.T) {
	assert.True(t, ValidateCPF("123.456.789-09"))
	assert.True(t, ValidateCPF("12345678909"))
	assert.True(t, ValidateCPF(" 123.456.789-09 "))
	assert.False(t, ValidateCPF("1234567890"))
	assert.False(t, ValidateCPF("123.456.789"))
	assert.False(t, ValidateCPF("abc.def.ghi-jk"))
}

func TestValidDateAndTime(t *testing.T) {
	assert.True(t, ValidDate("2024-05-21"))
	assert.False(t, ValidDate("21/05/2024"))
	assert.False(t, ValidDate("2024-13-01"))

	assert.True(t, ValidTime("09:30"))
	assert.False(t, ValidTime("9:30"))
	assert.False(t, ValidTime("25:00"))
}
