package donations

import (
	"github.com/sahana-dev/daansetu/pkg/config"
)

// Default credit awards per category
const (
	defaultFoodCredits    = 100
	defaultBloodCredits   = 300
	defaultClothesCredits = 150
	defaultBooksCredits   = 75
	defaultOtherCredits   = 50
)

// CreditCalculator maps a donation category to its fixed point award.
// Unknown categories fall back to the default tier rather than being
// rejected.
type CreditCalculator struct {
	food    int
	blood   int
	clothes int
	books   int
	other   int
}

// NewCreditCalculator creates a credit calculator, taking tier overrides
// from config when provided
func NewCreditCalculator(cfg *config.CreditsConfig) *CreditCalculator {
	c := &CreditCalculator{
		food:    defaultFoodCredits,
		blood:   defaultBloodCredits,
		clothes: defaultClothesCredits,
		books:   defaultBooksCredits,
		other:   defaultOtherCredits,
	}

	if cfg != nil {
		if cfg.Food > 0 {
			c.food = cfg.Food
		}
		if cfg.Blood > 0 {
			c.blood = cfg.Blood
		}
		if cfg.Clothes > 0 {
			c.clothes = cfg.Clothes
		}
		if cfg.Books > 0 {
			c.books = cfg.Books
		}
		if cfg.Default > 0 {
			c.other = cfg.Default
		}
	}

	return c
}

// CreditsFor returns the point award for a category
func (c *CreditCalculator) CreditsFor(category Category) int {
	switch category {
	case CategoryFood:
		return c.food
	case CategoryBlood:
		return c.blood
	case CategoryClothes:
		return c.clothes
	case CategoryBooks:
		return c.books
	default:
		return c.other
	}
}
