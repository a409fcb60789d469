package order

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"vitrine-engine/internal/domain/cart"
)

var (
	ErrMissingCustomerName    = errors.New("customer name is required")
	ErrMissingCustomerContact = errors.New("customer contact is required")
	ErrEmptyOrder             = errors.New("order must have at least one item")
)

// Customer is the validated settlement entry guard: trimmed non-empty name
// and a digits-only contact.
type Customer struct {
	name    string
	contact string
}

func NewCustomer(name, contact string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, ErrMissingCustomerName
	}

	var digits strings.Builder
	for _, r := range contact {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return Customer{}, ErrMissingCustomerContact
	}

	return Customer{name: name, contact: digits.String()}, nil
}

func (c Customer) Name() string    { return c.name }
func (c Customer) Contact() string { return c.contact }

// NewID derives the order id from submission wall-clock time. Collisions are
// accepted as negligible at expected write rates.
func NewID(now time.Time) string {
	return "PED-" + now.Format("20060102150405")
}

// Item is one line of a snapshot, copied from the cart at submission time.
// The shape round-trips through the ledger's itens_json column.
type Item struct {
	ProductID      int64  `json:"id"`
	Name           string `json:"nome"`
	UnitPriceCents int64  `json:"preco_centavos"`
	Quantity       int    `json:"quantidade"`
}

// Snapshot is the immutable order record appended to the ledger. Subsequent
// status changes are out of scope for this engine.
type Snapshot struct {
	ID              string    `json:"id_pedido"`
	CreatedAt       time.Time `json:"data_hora"`
	CustomerName    string    `json:"nome_cliente"`
	CustomerContact string    `json:"contato_cliente"`
	Items           []Item    `json:"itens"`
	SubtotalCents   int64     `json:"subtotal_centavos"`
	DiscountCents   int64     `json:"desconto_centavos"`
	TotalCents      int64     `json:"total_centavos"`
	CashbackCents   int64     `json:"cashback_centavos"`
	CouponCode      *string   `json:"cupom,omitempty"`
	ImageURL        string    `json:"link_imagem,omitempty"`
	Status          Status    `json:"status"`
}

// NewSnapshot freezes the cart into an order record. Line items are copied,
// not referenced, so clearing the cart afterwards cannot mutate the snapshot.
func NewSnapshot(id string, createdAt time.Time, customer Customer, c *cart.Cart, cashbackCents int64, imageURL string) (*Snapshot, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, 0, c.Len())
	for _, li := range c.Items() {
		items = append(items, Item{
			ProductID:      li.ProductID(),
			Name:           li.Name(),
			UnitPriceCents: li.UnitPriceCents(),
			Quantity:       li.Quantity(),
		})
	}

	var (
		discount   int64
		couponCode *string
	)
	if applied := c.AppliedCoupon(); applied != nil {
		discount = applied.DiscountCents
		code := applied.Code.String()
		couponCode = &code
	}

	return &Snapshot{
		ID:              id,
		CreatedAt:       createdAt,
		CustomerName:    customer.Name(),
		CustomerContact: customer.Contact(),
		Items:           items,
		SubtotalCents:   c.SubtotalCents(),
		DiscountCents:   discount,
		TotalCents:      c.TotalCents(),
		CashbackCents:   cashbackCents,
		CouponCode:      couponCode,
		ImageURL:        imageURL,
		Status:          StatusPending,
	}, nil
}
