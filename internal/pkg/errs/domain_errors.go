package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Catalog errors
	ErrCatalogUnavailable = errors.New("catalog data unavailable")
	ErrProductNotFound    = errors.New("product not found")

	// Cart errors
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")

	// Coupon errors
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrCouponBelowMinimum   = errors.New("order below coupon minimum")
	ErrCouponExpired        = errors.New("coupon expired")
	ErrCouponExhaustedUsage = errors.New("coupon usage limit reached")

	// Settlement errors
	ErrSubmissionInProgress   = errors.New("submission already in progress")
	ErrLedgerUnavailable      = errors.New("order ledger unavailable")
	ErrConcurrentModification = errors.New("order ledger modified concurrently")

	// Validation errors
	ErrCustomerValidation = errors.New("customer validation error")
)
