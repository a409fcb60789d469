package coupon

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

type Code string

// NewCode normalizes a user-entered code: trimmed, case-insensitive.
func NewCode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

type Discount struct {
	kind           DiscountType
	percentOff     float64
	amountOffCents int64
}

func NewPercentDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{kind: DiscountPercent, percentOff: percentOff}, nil
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountFixed, amountOffCents: amountOffCents}, nil
}

func (d Discount) Type() DiscountType    { return d.kind }
func (d Discount) PercentOff() float64   { return d.percentOff }
func (d Discount) AmountOffCents() int64 { return d.amountOffCents }

// AmountFor computes the discount over a subtotal in cents. Fixed discounts
// are clamped to the subtotal so the resulting total never goes negative;
// percent discounts round half away from zero to a cent.
func (d Discount) AmountFor(subtotalCents int64) int64 {
	switch d.kind {
	case DiscountPercent:
		return int64(math.Round(float64(subtotalCents) * d.percentOff / 100.0))
	case DiscountFixed:
		if d.amountOffCents > subtotalCents {
			return subtotalCents
		}
		return d.amountOffCents
	default:
		return 0
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// CivilDay truncates an instant to midnight of its day in the given civil
// timezone. Coupon expiry is compared at this granularity: a coupon expiring
// "today" is still valid.
func CivilDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
