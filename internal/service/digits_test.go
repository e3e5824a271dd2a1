package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "12345", NormalizeDigits("١٢٣٤٥"))
	assert.Equal(t, "0987", NormalizeDigits("۰۹۸۷"))
	assert.Equal(t, "A-12", NormalizeDigits("A-١٢"))
	assert.Equal(t, "12345", NormalizeDigits("12345"))
	assert.Equal(t, "", NormalizeDigits(""))
}
