package queries

import (
	"context"

	"github.com/google/uuid"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/cashback"
	"vitrine-engine/internal/domain/catalog"
	"vitrine-engine/internal/domain/order"
	"vitrine-engine/internal/infra/session"
)

// SessionStore is the slice of the session store the read side needs.
type SessionStore interface {
	Update(id uuid.UUID, fn func(sess *session.Session) error) error
}

type CartQueries interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	sessions SessionStore
	catalog  CatalogQueries
	cashback cashback.Calculator
}

func NewCartQueries(sessions SessionStore, catalogQueries CatalogQueries, calc cashback.Calculator) CartQueries {
	return &cartQueriesImpl{
		sessions: sessions,
		catalog:  catalogQueries,
		cashback: calc,
	}
}

func (q *cartQueriesImpl) GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	// Cashback needs the current rates; a stale or missing catalog simply
	// contributes zero, it never fails the cart view.
	idx, err := q.catalog.Index(ctx)
	if err != nil {
		idx = catalog.EmptyIndex()
	}

	var view *CartView
	err = q.sessions.Update(sessionID, func(sess *session.Session) error {
		view = NewCartView(sess.Cart, sess.State, q.cashback.EarnedCents(sess.Cart, idx))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// NewCartView freezes a cart into its read model. Shared by the command
// side, which returns the refreshed view after every mutation.
func NewCartView(c *cart.Cart, state order.SettlementState, cashbackCents int64) *CartView {
	items := make([]*CartItemView, 0, c.Len())
	for _, li := range c.Items() {
		items = append(items, &CartItemView{
			ProductID:      li.ProductID(),
			Name:           li.Name(),
			UnitPriceCents: li.UnitPriceCents(),
			Quantity:       li.Quantity(),
			SubtotalCents:  li.SubtotalCents(),
		})
	}

	view := &CartView{
		Items:         items,
		SubtotalCents: c.SubtotalCents(),
		TotalCents:    c.TotalCents(),
		CashbackCents: cashbackCents,
		State:         state.String(),
	}
	if applied := c.AppliedCoupon(); applied != nil {
		code := applied.Code.String()
		view.CouponCode = &code
		view.DiscountCents = applied.DiscountCents
	}
	return view
}
