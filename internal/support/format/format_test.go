package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.34", Money(1234, "USD"))
	assert.Equal(t, "$1,234.56", Money(123456, ""))
	assert.Equal(t, "€0.99", Money(99, "EUR"))
	assert.Equal(t, "42.00 SEK", Money(4200, "SEK"))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1,250", Count(1250))
}
