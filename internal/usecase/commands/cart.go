package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/cashback"
	"vitrine-engine/internal/domain/catalog"
	"vitrine-engine/internal/domain/coupon"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/session"
	"vitrine-engine/internal/pkg/clock"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/queries"
)

type CartCommands interface {
	AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*queries.CartView, error)
	SetQuantity(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*queries.CartView, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID int64) (*queries.CartView, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) (*queries.CartView, error)
	ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*queries.CartView, error)
	RemoveCoupon(ctx context.Context, sessionID uuid.UUID) (*queries.CartView, error)
}

type cartCommandsImpl struct {
	sessions SessionStore
	catalog  queries.CatalogQueries
	coupons  CouponRepository
	cashback cashback.Calculator
	clock    clock.Clock
	loc      *time.Location
}

func NewCartCommands(
	sessions SessionStore,
	catalogQueries queries.CatalogQueries,
	coupons CouponRepository,
	calc cashback.Calculator,
	clk clock.Clock,
	loc *time.Location,
) CartCommands {
	return &cartCommandsImpl{
		sessions: sessions,
		catalog:  catalogQueries,
		coupons:  coupons,
		cashback: calc,
		clock:    clk,
		loc:      loc,
	}
}

// AddItem captures the product's effective price and display name at add
// time; later catalog reloads do not rewrite existing line items.
func (c *cartCommandsImpl) AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*queries.CartView, error) {
	idx, err := c.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	product, ok := idx.Lookup(productID)
	if !ok {
		return nil, errs.ErrProductNotFound
	}

	ceiling := idx.StockCeiling(productID)

	return c.mutate(sessionID, idx, func(sess *session.Session) error {
		if addErr := sess.Cart.Add(productID, quantity, product.EffectivePriceCents(), product.DisplayName(), ceiling); addErr != nil {
			return errs.Mark(addErr, errs.ErrInsufficientStock)
		}
		return nil
	})
}

func (c *cartCommandsImpl) SetQuantity(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*queries.CartView, error) {
	idx, err := c.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	return c.mutate(sessionID, idx, func(sess *session.Session) error {
		sess.Cart.SetQuantity(productID, quantity, idx.StockCeiling(productID))
		return nil
	})
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID int64) (*queries.CartView, error) {
	return c.mutate(sessionID, c.indexOrEmpty(ctx), func(sess *session.Session) error {
		sess.Cart.Remove(productID)
		return nil
	})
}

func (c *cartCommandsImpl) ClearCart(ctx context.Context, sessionID uuid.UUID) (*queries.CartView, error) {
	return c.mutate(sessionID, c.indexOrEmpty(ctx), func(sess *session.Session) error {
		sess.Cart.Clear()
		return nil
	})
}

// ApplyCoupon validates a code against the current subtotal. Validation is
// pure, no usage counter moves here, and a failed application always
// clears any previously applied coupon.
func (c *cartCommandsImpl) ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*queries.CartView, error) {
	found, err := c.coupons.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			err = errs.Mark(err, errs.ErrCouponNotFound)
		} else {
			err = errs.Mark(err, errs.ErrCatalogUnavailable)
		}
		_, _ = c.mutate(sessionID, catalog.EmptyIndex(), func(sess *session.Session) error {
			sess.Cart.RemoveCoupon()
			return nil
		})
		return nil, err
	}

	today := coupon.CivilDay(c.clock.Now(), c.loc)

	return c.mutate(sessionID, c.indexOrEmpty(ctx), func(sess *session.Session) error {
		discount, discErr := found.DiscountFor(sess.Cart.SubtotalCents(), today)
		if discErr != nil {
			sess.Cart.RemoveCoupon()
			return markCouponError(discErr)
		}
		sess.Cart.ApplyCoupon(cart.AppliedCoupon{Code: found.Code(), DiscountCents: discount})
		return nil
	})
}

func (c *cartCommandsImpl) RemoveCoupon(ctx context.Context, sessionID uuid.UUID) (*queries.CartView, error) {
	return c.mutate(sessionID, c.indexOrEmpty(ctx), func(sess *session.Session) error {
		sess.Cart.RemoveCoupon()
		return nil
	})
}

// mutate runs a cart mutation under the session lock, enforcing the
// SUBMITTING guard, and returns the refreshed cart view on success.
func (c *cartCommandsImpl) mutate(sessionID uuid.UUID, idx *catalog.Index, fn func(sess *session.Session) error) (*queries.CartView, error) {
	var view *queries.CartView
	err := c.sessions.Update(sessionID, func(sess *session.Session) error {
		if sess.State.Busy() {
			return errs.ErrSubmissionInProgress
		}
		if fnErr := fn(sess); fnErr != nil {
			return fnErr
		}
		view = queries.NewCartView(sess.Cart, sess.State, c.cashback.EarnedCents(sess.Cart, idx))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *cartCommandsImpl) indexOrEmpty(ctx context.Context) *catalog.Index {
	idx, err := c.catalog.Index(ctx)
	if err != nil {
		return catalog.EmptyIndex()
	}
	return idx
}

func markCouponError(err error) error {
	var belowMin *coupon.BelowMinimumError
	switch {
	case errors.As(err, &belowMin):
		return errs.Mark(err, errs.ErrCouponBelowMinimum)
	case errors.Is(err, coupon.ErrCouponExpired):
		return errs.Mark(err, errs.ErrCouponExpired)
	case errors.Is(err, coupon.ErrCouponExhaustedUsage):
		return errs.Mark(err, errs.ErrCouponExhaustedUsage)
	case errors.Is(err, coupon.ErrCouponInactive):
		// Inactive codes are indistinguishable from unknown ones on purpose.
		return errs.Mark(err, errs.ErrCouponNotFound)
	default:
		return err
	}
}
