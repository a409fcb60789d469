package catalogstore

import (
	"context"
	"fmt"
	"time"

	"vitrine-engine/internal/domain/coupon"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/tabular"
	"vitrine-engine/internal/pkg/config"
)

// CouponStore resolves coupon codes against the coupon CSV document. Lookup
// is case-insensitive and trimmed; the match itself never mutates anything.
type CouponStore struct {
	fetcher Fetcher
	cfg     config.StorehouseConfig
	loc     *time.Location
}

func NewCouponStore(fetcher Fetcher, cfg config.StorehouseConfig, loc *time.Location) *CouponStore {
	return &CouponStore{fetcher: fetcher, cfg: cfg, loc: loc}
}

func (s *CouponStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized, err := coupon.NewCode(code)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "empty coupon code", err)
	}

	doc, err := s.fetcher.Fetch(ctx, s.cfg.CouponsPath)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Decode(doc.Content)
	if err != nil {
		return nil, err
	}

	for row := 0; row < table.Len(); row++ {
		rowCode, err := coupon.NewCode(table.Field(row, "CODIGO", "CODE"))
		if err != nil || rowCode != normalized {
			continue
		}
		c, err := s.couponFromRow(table, row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindMalformed,
				fmt.Sprintf("coupon row %d invalid", row+1), err)
		}
		return c, nil
	}

	return nil, infra.WrapRepoErr(infra.KindNotFound, "coupon not found: "+normalized.String(), nil)
}

func (s *CouponStore) couponFromRow(table *tabular.Table, row int) (*coupon.Coupon, error) {
	var discount coupon.Discount
	switch tabular.NormalizeHeader(table.Field(row, "TIPO_DESCONTO", "TIPODESCONTO")) {
	case "PERCENTUAL", "PERCENT":
		pct, err := tabular.ParseFloat(table.Field(row, "VALOR"))
		if err != nil {
			return nil, fmt.Errorf("bad percent value: %w", err)
		}
		discount, err = coupon.NewPercentDiscount(pct)
		if err != nil {
			return nil, err
		}
	case "FIXO", "FIXED":
		cents, err := tabular.ParseMoneyCents(table.Field(row, "VALOR"))
		if err != nil {
			return nil, fmt.Errorf("bad fixed value: %w", err)
		}
		discount, err = coupon.NewFixedDiscount(cents)
		if err != nil {
			return nil, err
		}
	default:
		return nil, coupon.ErrInvalidDiscountType
	}

	var minOrderCents int64
	if raw := table.Field(row, "VALOR_MINIMO_PEDIDO", "VALORMINIMO"); raw != "" {
		cents, err := tabular.ParseMoneyCents(raw)
		if err != nil {
			return nil, fmt.Errorf("bad minimum order value: %w", err)
		}
		minOrderCents = cents
	}

	var usageLimit, usageCount int
	if raw := table.Field(row, "LIMITE_USOS", "LIMITEUSOS"); raw != "" {
		v, err := tabular.ParseInt(raw)
		if err != nil {
			return nil, fmt.Errorf("bad usage limit: %w", err)
		}
		usageLimit = v
	}
	if raw := table.Field(row, "USOS_ATUAIS", "USOSATUAIS"); raw != "" {
		v, err := tabular.ParseInt(raw)
		if err != nil {
			return nil, fmt.Errorf("bad usage count: %w", err)
		}
		usageCount = v
	}

	var expiresOn *time.Time
	if raw := table.Field(row, "DATA_VALIDADE", "DATAVALIDADE", "VALIDADE"); raw != "" {
		day, err := tabular.ParseCivilDate(raw, s.loc)
		if err != nil {
			return nil, fmt.Errorf("bad expiry date: %w", err)
		}
		expiresOn = &day
	}

	status := coupon.StatusInactive
	switch tabular.NormalizeHeader(table.Field(row, "STATUS")) {
	case "ATIVO", "ACTIVE", "":
		status = coupon.StatusActive
	}

	return coupon.NewCoupon(
		table.Field(row, "CODIGO", "CODE"),
		discount,
		minOrderCents,
		usageLimit,
		usageCount,
		expiresOn,
		status,
	)
}
