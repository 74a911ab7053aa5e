package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"whole", 100, true},
		{"two decimals", 99.99, true},
		{"one decimal", 0.5, true},
		{"smallest unit", 0.01, true},
		{"zero", 0, false},
		{"negative", -10, false},
		{"three decimals", 10.001, false},
		{"sub-cent", 0.005, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAmount(tt.amount))
		})
	}
}

func TestValidatorCheck(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "amount", "must be positive")
	assert.True(t, v.Valid())

	v.Check(false, "type", "must be income or expense")
	assert.False(t, v.Valid())
	assert.Equal(t, "type: must be income or expense", v.Errors[0].Error())
}
