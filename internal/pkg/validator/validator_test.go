package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("a"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-02-29")
	assert.True(t, ok)
	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("01/02/2024")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidCoordinates(-6.2, 106.8))
	assert.True(t, IsValidCoordinates(0, 0))
	assert.False(t, IsValidCoordinates(91, 0))
	assert.False(t, IsValidCoordinates(0, -181))
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("sick", []string{"casual", "sick"}))
	assert.False(t, IsInSlice("unpaid", []string{"casual", "sick"}))
}
