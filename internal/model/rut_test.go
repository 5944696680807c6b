package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRUT(t *testing.T) {
	assert.Equal(t, "12345678-5", NormalizeRUT(" 12.345.678-5 "))
	assert.Equal(t, "7654321-K", NormalizeRUT("7.654.321-k"))
	assert.Equal(t, "12345678-5", NormalizeRUT("123456785"))
	assert.Equal(t, "", NormalizeRUT("  "))
}

func TestValidRUT(t *testing.T) {
	cases := map[string]bool{
		"12345678-5": true,
		"11111111-1": true,
		"12345678-K": false,
		"12345678-4": false,
		"1234A678-5": false,
		"-5":         false,
		"12345678":   false,
	}
	for rut, want := range cases {
		assert.Equal(t, want, ValidRUT(rut), rut)
	}
}
