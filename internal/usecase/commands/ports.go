package commands

import (
	"context"

	"github.com/google/uuid"

	"vitrine-engine/internal/domain/coupon"
	"vitrine-engine/internal/domain/order"
	"vitrine-engine/internal/infra/session"
)

// Write-side ports. Declared here so the command layer depends on behavior,
// not on concrete infra types.

type SessionStore interface {
	Update(id uuid.UUID, fn func(sess *session.Session) error) error
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
}

// OrderLedger appends a snapshot with the guarded single-write commit.
// Failures keep their RepositoryError kind: Conflict means another writer
// won the version token race, everything else is the ledger being
// unreachable.
type OrderLedger interface {
	Append(ctx context.Context, snap *order.Snapshot) error
}

type DeepLinkGenerator interface {
	Link(snap *order.Snapshot) string
}
