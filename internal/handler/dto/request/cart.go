package request

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type SetQuantityRequest struct {
	// Out-of-range values are clamped, not rejected. A pointer keeps the
	// required binding a pure presence check; a plain int would make gin
	// refuse the zero value before the clamp could run.
	Quantity *int `json:"quantity" binding:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
