package coupon

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCouponInactive       = errors.New("coupon is inactive")
	ErrCouponExpired        = errors.New("coupon has expired")
	ErrCouponExhaustedUsage = errors.New("coupon usage limit reached")
)

// BelowMinimumError reports the minimum order value a coupon requires, so the
// caller can surface it inline.
type BelowMinimumError struct {
	RequiredCents int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order below coupon minimum of %d cents", e.RequiredCents)
}

type Coupon struct {
	code          Code
	discount      Discount
	minOrderCents int64
	usageLimit    int
	usageCount    int
	expiresOn     *time.Time // civil midnight in the catalog timezone
	status        Status
}

func NewCoupon(
	code string,
	discount Discount,
	minOrderCents int64,
	usageLimit, usageCount int,
	expiresOn *time.Time,
	status Status,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if minOrderCents < 0 {
		minOrderCents = 0
	}
	return &Coupon{
		code:          couponCode,
		discount:      discount,
		minOrderCents: minOrderCents,
		usageLimit:    usageLimit,
		usageCount:    usageCount,
		expiresOn:     expiresOn,
		status:        status,
	}, nil
}

// Eligible checks the rules that do not depend on the order: status, usage
// limit and expiry. `today` must already be a civil midnight (see CivilDay).
func (c *Coupon) Eligible(today time.Time) error {
	if c.status != StatusActive {
		return ErrCouponInactive
	}
	if c.usageLimit > 0 && c.usageCount >= c.usageLimit {
		return ErrCouponExhaustedUsage
	}
	if c.expiresOn != nil && c.expiresOn.Before(today) {
		return ErrCouponExpired
	}
	return nil
}

// DiscountFor validates the coupon against an order subtotal and computes the
// discount amount. Pure: same inputs always yield the same result, and no
// usage counter is touched here.
func (c *Coupon) DiscountFor(subtotalCents int64, today time.Time) (int64, error) {
	if err := c.Eligible(today); err != nil {
		return 0, err
	}
	if subtotalCents < c.minOrderCents {
		return 0, &BelowMinimumError{RequiredCents: c.minOrderCents}
	}
	return c.discount.AmountFor(subtotalCents), nil
}

func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) MinOrderCents() int64  { return c.minOrderCents }
func (c *Coupon) UsageLimit() int       { return c.usageLimit }
func (c *Coupon) UsageCount() int       { return c.usageCount }
func (c *Coupon) ExpiresOn() *time.Time { return c.expiresOn }
func (c *Coupon) Status() Status        { return c.status }
