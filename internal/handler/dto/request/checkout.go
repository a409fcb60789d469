package request

type SubmitOrderRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerContact string `json:"customer_contact" binding:"required"`
}
