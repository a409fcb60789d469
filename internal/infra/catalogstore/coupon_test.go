//go:build unit

package catalogstore_test

import (
	"context"
	"testing"
	"time"

	"vitrine-engine/internal/domain/coupon"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/catalogstore"
	"vitrine-engine/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const couponsCSV = "CODIGO,TIPO_DESCONTO,VALOR,DATA_VALIDADE,VALOR_MINIMO_PEDIDO,LIMITE_USOS,USOS_ATUAIS,STATUS\n" +
	"SAVE10,PERCENTUAL,10,25/12/2026,\"20,00\",100,3,ATIVO\n" +
	"MENOS5,FIXO,\"5,00\",,,,,\n" +
	"VELHO,PERCENTUAL,15,,,,,INATIVO\n"

func newCouponStore(f *fakeFetcher) *catalogstore.CouponStore {
	cfg := config.NewTestConfig()
	return catalogstore.NewCouponStore(f, cfg.Storehouse, testLoc)
}

func TestCouponStoreFindByCode(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{docs: map[string]string{"data/cupons.csv": couponsCSV}}
	store := newCouponStore(fetcher)

	t.Run("finds a percent coupon with all fields", func(t *testing.T) {
		c, err := store.FindByCode(ctx, "SAVE10")
		require.NoError(t, err)

		assert.Equal(t, "SAVE10", c.Code().String())
		assert.Equal(t, coupon.DiscountPercent, c.Discount().Type())
		assert.Equal(t, float64(10), c.Discount().PercentOff())
		assert.Equal(t, int64(2000), c.MinOrderCents())
		assert.Equal(t, 100, c.UsageLimit())
		assert.Equal(t, 3, c.UsageCount())
		require.NotNil(t, c.ExpiresOn())
		assert.Equal(t, time.Date(2026, time.December, 25, 0, 0, 0, 0, testLoc), *c.ExpiresOn())
		assert.Equal(t, coupon.StatusActive, c.Status())
	})

	t.Run("lookup is case-insensitive and trimmed", func(t *testing.T) {
		c, err := store.FindByCode(ctx, "  save10  ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code().String())
	})

	t.Run("fixed coupon with sparse columns defaults to active and unlimited", func(t *testing.T) {
		c, err := store.FindByCode(ctx, "MENOS5")
		require.NoError(t, err)

		assert.Equal(t, coupon.DiscountFixed, c.Discount().Type())
		assert.Equal(t, int64(500), c.Discount().AmountOffCents())
		assert.Equal(t, int64(0), c.MinOrderCents())
		assert.Equal(t, 0, c.UsageLimit())
		assert.Nil(t, c.ExpiresOn())
		assert.Equal(t, coupon.StatusActive, c.Status())
	})

	t.Run("inactive coupons are still returned with their status", func(t *testing.T) {
		c, err := store.FindByCode(ctx, "VELHO")
		require.NoError(t, err)
		assert.Equal(t, coupon.StatusInactive, c.Status())
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := store.FindByCode(ctx, "NAOEXISTE")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("blank code is not found", func(t *testing.T) {
		_, err := store.FindByCode(ctx, "   ")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("malformed matching row is malformed, not not-found", func(t *testing.T) {
		broken := &fakeFetcher{docs: map[string]string{
			"data/cupons.csv": "CODIGO,TIPO_DESCONTO,VALOR\nRUIM,PERCENTUAL,dez\n",
		}}

		_, err := newCouponStore(broken).FindByCode(ctx, "RUIM")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindMalformed))
	})

	t.Run("unknown discount type is malformed", func(t *testing.T) {
		broken := &fakeFetcher{docs: map[string]string{
			"data/cupons.csv": "CODIGO,TIPO_DESCONTO,VALOR\nESQUISITO,BRINDE,10\n",
		}}

		_, err := newCouponStore(broken).FindByCode(ctx, "ESQUISITO")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindMalformed))
	})
}
