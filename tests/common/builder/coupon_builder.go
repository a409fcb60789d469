//go:build unit

package builder

import (
	"time"

	"vitrine-engine/internal/domain/coupon"
)

type CouponBuilder struct {
	Code          string
	DiscountType  coupon.DiscountType
	PercentOff    float64
	AmountOff     int64
	MinOrderCents int64
	UsageLimit    int
	UsageCount    int
	ExpiresOn     *time.Time
	Status        coupon.Status
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		Code:         "SAVE10",
		DiscountType: coupon.DiscountPercent,
		PercentOff:   10,
		Status:       coupon.StatusActive,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	var (
		discount coupon.Discount
		err      error
	)
	switch b.DiscountType {
	case coupon.DiscountFixed:
		discount, err = coupon.NewFixedDiscount(b.AmountOff)
	default:
		discount, err = coupon.NewPercentDiscount(b.PercentOff)
	}
	if err != nil {
		return nil, err
	}

	return coupon.NewCoupon(b.Code, discount, b.MinOrderCents, b.UsageLimit, b.UsageCount, b.ExpiresOn, b.Status)
}

func (b *CouponBuilder) MustBuild() *coupon.Coupon {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithPercentOff(percent float64) *CouponBuilder {
	b.DiscountType = coupon.DiscountPercent
	b.PercentOff = percent
	return b
}

func (b *CouponBuilder) WithFixedOff(cents int64) *CouponBuilder {
	b.DiscountType = coupon.DiscountFixed
	b.AmountOff = cents
	return b
}

func (b *CouponBuilder) WithMinOrder(cents int64) *CouponBuilder {
	b.MinOrderCents = cents
	return b
}

func (b *CouponBuilder) WithUsage(limit, count int) *CouponBuilder {
	b.UsageLimit = limit
	b.UsageCount = count
	return b
}

func (b *CouponBuilder) WithExpiry(day time.Time) *CouponBuilder {
	b.ExpiresOn = &day
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.Status = coupon.StatusInactive
	return b
}
