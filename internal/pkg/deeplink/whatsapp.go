package deeplink

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"vitrine-engine/internal/domain/order"
	"vitrine-engine/internal/pkg/config"
)

// WhatsAppGenerator builds the hand-off deeplink shown after an order is
// confirmed. Settlement is a manual hand-off: the customer finishes the
// conversation in the chat channel.
type WhatsAppGenerator struct {
	storeName string
	number    string
}

func NewWhatsAppGenerator(cfg config.CheckoutConfig) *WhatsAppGenerator {
	return &WhatsAppGenerator{
		storeName: cfg.StoreName,
		number:    digitsOnly(cfg.WhatsAppNumber),
	}
}

// Link renders the wa.me URL with the URL-encoded order message. Only call
// with a confirmed snapshot; there is nothing to hand off before that.
func (g *WhatsAppGenerator) Link(snap *order.Snapshot) string {
	message := fmt.Sprintf(
		"Olá, %s! Acabei de enviar o pedido *%s* em nome de %s. Total: R$ %.2f. Aguardo a confirmação!",
		g.storeName, snap.ID, snap.CustomerName, float64(snap.TotalCents)/100,
	)
	return "https://wa.me/" + g.number + "?text=" + url.QueryEscape(message)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
