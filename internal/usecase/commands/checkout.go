package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/cashback"
	"vitrine-engine/internal/domain/catalog"
	"vitrine-engine/internal/domain/order"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/session"
	"vitrine-engine/internal/pkg/clock"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/queries"
)

type SubmitOrderResult struct {
	Order    *queries.OrderView
	DeepLink string
}

type CheckoutCommands interface {
	// Submit runs one settlement attempt: IDLE → SUBMITTING → {CONFIRMED,
	// FAILED}. On success the cart and applied coupon are cleared; on any
	// failure the cart is left untouched so the customer keeps their
	// selection, and the busy flag is reset so they can resubmit.
	Submit(ctx context.Context, sessionID uuid.UUID, customerName, customerContact string) (*SubmitOrderResult, error)
}

type checkoutCommandsImpl struct {
	sessions SessionStore
	catalog  queries.CatalogQueries
	cashback cashback.Calculator
	ledger   OrderLedger
	deeplink DeepLinkGenerator
	clock    clock.Clock
	loc      *time.Location
}

func NewCheckoutCommands(
	sessions SessionStore,
	catalogQueries queries.CatalogQueries,
	calc cashback.Calculator,
	orderLedger OrderLedger,
	deeplink DeepLinkGenerator,
	clk clock.Clock,
	loc *time.Location,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		sessions: sessions,
		catalog:  catalogQueries,
		cashback: calc,
		ledger:   orderLedger,
		deeplink: deeplink,
		clock:    clk,
		loc:      loc,
	}
}

func (c *checkoutCommandsImpl) Submit(ctx context.Context, sessionID uuid.UUID, customerName, customerContact string) (*SubmitOrderResult, error) {
	customer, err := order.NewCustomer(customerName, customerContact)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCustomerValidation)
	}

	// A submission must not fail on cashback lookup; an unreachable catalog
	// just means zero cashback on this order.
	idx, err := c.catalog.Index(ctx)
	if err != nil {
		slog.Warn("catalog unavailable at submission, cashback defaults to zero", "error", err)
		idx = catalog.EmptyIndex()
	}

	snap, err := c.beginSubmission(sessionID, customer, idx)
	if err != nil {
		return nil, err
	}

	// The ledger write happens outside the session lock; the SUBMITTING
	// state set above is what rejects re-entry meanwhile.
	appendErr := c.ledger.Append(ctx, snap)

	if finishErr := c.finishSubmission(sessionID, appendErr == nil); finishErr != nil {
		return nil, finishErr
	}

	if appendErr != nil {
		if infra.IsKind(appendErr, infra.KindConflict) {
			return nil, errs.Mark(appendErr, errs.ErrConcurrentModification)
		}
		return nil, errs.Mark(appendErr, errs.ErrLedgerUnavailable)
	}

	view := &queries.OrderView{}
	if copyErr := copier.Copy(view, snap); copyErr != nil {
		return nil, errs.Wrap(copyErr, "failed to build order view")
	}
	view.Status = string(snap.Status)

	return &SubmitOrderResult{
		Order:    view,
		DeepLink: c.deeplink.Link(snap),
	}, nil
}

// beginSubmission transitions IDLE → SUBMITTING under the session lock and
// freezes the cart into a snapshot. The check-and-set against the busy flag
// is the sole mechanism preventing duplicate ledger rows from one session.
func (c *checkoutCommandsImpl) beginSubmission(sessionID uuid.UUID, customer order.Customer, idx *catalog.Index) (*order.Snapshot, error) {
	var snap *order.Snapshot
	err := c.sessions.Update(sessionID, func(sess *session.Session) error {
		if !sess.State.CanSubmit() {
			return errs.ErrSubmissionInProgress
		}
		if sess.Cart.IsEmpty() {
			return errs.ErrEmptyCart
		}

		now := c.clock.Now().In(c.loc)
		earned := c.cashback.EarnedCents(sess.Cart, idx)

		built, buildErr := order.NewSnapshot(
			order.NewID(now), now, customer, sess.Cart, earned, leadImage(sess.Cart, idx),
		)
		if buildErr != nil {
			return errs.Mark(buildErr, errs.ErrCustomerValidation)
		}

		sess.State = order.StateSubmitting
		snap = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *checkoutCommandsImpl) finishSubmission(sessionID uuid.UUID, committed bool) error {
	return c.sessions.Update(sessionID, func(sess *session.Session) error {
		if committed {
			sess.State = order.StateConfirmed
			sess.Cart.Clear()
			return nil
		}
		sess.State = order.StateFailed
		return nil
	})
}

// leadImage picks the ledger's LINKIMAGEM column: the first cart item that
// still resolves to a product with an image.
func leadImage(c *cart.Cart, idx *catalog.Index) string {
	for _, item := range c.Items() {
		if p, ok := idx.Lookup(item.ProductID()); ok && p.ImageURL() != "" {
			return p.ImageURL()
		}
	}
	return ""
}
