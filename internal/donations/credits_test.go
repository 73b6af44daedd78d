package donations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahana-dev/daansetu/pkg/config"
)

func TestCreditsForDefaultTiers(t *testing.T) {
	calc := NewCreditCalculator(nil)

	tests := []struct {
		category Category
		want     int
	}{
		{CategoryFood, 100},
		{CategoryBlood, 300},
		{CategoryClothes, 150},
		{CategoryBooks, 75},
		{CategoryOther, 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, calc.CreditsFor(tt.category))
		})
	}
}

func TestCreditsForUnknownCategoryFallsBack(t *testing.T) {
	calc := NewCreditCalculator(nil)

	assert.Equal(t, 50, calc.CreditsFor(Category("electronics")))
	assert.Equal(t, 50, calc.CreditsFor(Category("")))
}

func TestCreditsForConfigOverrides(t *testing.T) {
	calc := NewCreditCalculator(&config.CreditsConfig{
		Food:    200,
		Default: 25,
	})

	assert.Equal(t, 200, calc.CreditsFor(CategoryFood))
	assert.Equal(t, 25, calc.CreditsFor(Category("electronics")))
	// Unset overrides keep the defaults
	assert.Equal(t, 300, calc.CreditsFor(CategoryBlood))
	assert.Equal(t, 75, calc.CreditsFor(CategoryBooks))
}
