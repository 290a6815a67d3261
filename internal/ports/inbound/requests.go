package inbound

import (
	"strconv"
	"strings"
	"time"

	"auction-storefront/internal/domain/shared"
)

// Create-auction wizard steps
const (
	StepDetails = 1
	StepPricing = 2
	StepExtras  = 3
)

const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// AuctionInput holds the create-auction form fields as the user typed them.
// Prices stay strings until they are sent.
type AuctionInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Condition     string     `json:"condition,omitempty"`
	Location      string     `json:"location,omitempty"`
	StartingPrice string     `json:"startingPrice"`
	ReservePrice  string     `json:"reservePrice,omitempty"`
	BuyNowPrice   string     `json:"buyNowPrice,omitempty"`
	DurationDays  int        `json:"duration"`
	StartTime     *time.Time `json:"startTime,omitempty"`
	ShippingInfo  string     `json:"shippingInfo,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// RegisterInput holds the registration form fields
type RegisterInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

// ValidateStep gates the wizard: the user can only advance past step when it
// returns nil
func (in *AuctionInput) ValidateStep(step int) error {
	switch step {
	case StepDetails:
		if strings.TrimSpace(in.Title) == "" {
			return shared.ErrTitleRequired
		}
		if strings.TrimSpace(in.Description) == "" {
			return shared.ErrDescriptionRequired
		}
		if strings.TrimSpace(in.Category) == "" {
			return shared.ErrCategoryRequired
		}
	case StepPricing:
		starting, ok := ParsePrice(in.StartingPrice)
		if !ok || starting <= 0 {
			return shared.ErrInvalidStartingPrice
		}
		if in.ReservePrice != "" {
			reserve, ok := ParsePrice(in.ReservePrice)
			if !ok || reserve < starting {
				return shared.ErrInvalidReservePrice
			}
		}
		if in.DurationDays < MinDurationDays || in.DurationDays > MaxDurationDays {
			return shared.ErrInvalidDuration
		}
	case StepExtras:
		// location, condition and shipping are optional
	default:
		return shared.ErrUnknownWizardStep
	}
	return nil
}

// Validate runs every wizard step
func (in *AuctionInput) Validate() error {
	for _, step := range []int{StepDetails, StepPricing, StepExtras} {
		if err := in.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

// ParsePrice coerces a form price string such as "1,250.50" or "$99" to a number
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
