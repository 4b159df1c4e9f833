package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrPriceType(p PriceType) *PriceType       { return &p }
func ptrDecimal(d decimal.Decimal) *decimal.Decimal { return &d }

func TestNewWithdrawal(t *testing.T) {
	date := time.Now()

	t.Run("creates plain withdrawal", func(t *testing.T) {
		itemID := uuid.New()
		w, err := NewWithdrawal(ItemTypeRawMaterial, itemID, decimal.NewFromInt(3), ReasonDamaged, date)

		require.NoError(t, err)
		assert.Equal(t, itemID, w.ItemID)
		assert.Equal(t, ReasonDamaged, w.Reason)
		assert.Nil(t, w.OrderID)
		assert.Nil(t, w.PriceType)
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		w, err := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.Zero, ReasonSold, date)

		assert.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("fails with invalid reason", func(t *testing.T) {
		w, err := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.NewFromInt(1), WithdrawalReason("GIVEN_AWAY"), date)

		assert.Error(t, err)
		assert.Nil(t, w)
	})
}

func TestLinePricingValidate(t *testing.T) {
	t.Run("accepts price type alone", func(t *testing.T) {
		p := LinePricing{PriceType: ptrPriceType(PriceTypeUnit)}

		assert.NoError(t, p.Validate())
	})

	t.Run("accepts custom price alone", func(t *testing.T) {
		p := LinePricing{CustomPrice: ptrDecimal(decimal.NewFromFloat(99.50))}

		assert.NoError(t, p.Validate())
	})

	t.Run("rejects price type together with custom price", func(t *testing.T) {
		p := LinePricing{
			PriceType:   ptrPriceType(PriceTypeSRP),
			CustomPrice: ptrDecimal(decimal.NewFromInt(10)),
		}

		assert.Error(t, p.Validate())
	})

	t.Run("rejects a line with neither pricing mode", func(t *testing.T) {
		assert.Error(t, LinePricing{}.Validate())
	})

	t.Run("rejects discount reference together with custom discount", func(t *testing.T) {
		discountID := uuid.New()
		p := LinePricing{
			PriceType:             ptrPriceType(PriceTypeUnit),
			DiscountID:            &discountID,
			CustomDiscountPercent: ptrDecimal(decimal.NewFromInt(10)),
		}

		assert.Error(t, p.Validate())
	})

	t.Run("rejects custom discount outside 0 to 100", func(t *testing.T) {
		p := LinePricing{
			PriceType:             ptrPriceType(PriceTypeUnit),
			CustomDiscountPercent: ptrDecimal(decimal.NewFromInt(101)),
		}

		assert.Error(t, p.Validate())

		p.CustomDiscountPercent = ptrDecimal(decimal.NewFromInt(-1))
		assert.Error(t, p.Validate())
	})

	t.Run("accepts a full discount of 100 percent", func(t *testing.T) {
		p := LinePricing{
			PriceType:             ptrPriceType(PriceTypeUnit),
			CustomDiscountPercent: ptrDecimal(decimal.NewFromInt(100)),
		}

		assert.NoError(t, p.Validate())
	})
}

func TestNewOrderLine(t *testing.T) {
	date := time.Now()
	pricing := LinePricing{PriceType: ptrPriceType(PriceTypeUnit)}

	t.Run("creates sold line bound to an order", func(t *testing.T) {
		orderID := uuid.New()
		w, err := NewOrderLine(uuid.New(), decimal.NewFromInt(2), orderID, pricing, date)

		require.NoError(t, err)
		assert.Equal(t, ReasonSold, w.Reason)
		assert.True(t, w.BelongsToOrder(orderID))
	})

	t.Run("fails with nil order id", func(t *testing.T) {
		w, err := NewOrderLine(uuid.New(), decimal.NewFromInt(2), uuid.Nil, pricing, date)

		assert.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("fails with invalid pricing", func(t *testing.T) {
		w, err := NewOrderLine(uuid.New(), decimal.NewFromInt(2), uuid.New(), LinePricing{}, date)

		assert.Error(t, err)
		assert.Nil(t, w)
	})
}

func TestWithdrawalUpdateQuantity(t *testing.T) {
	t.Run("returns positive delta when quantity grows", func(t *testing.T) {
		w, _ := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.NewFromInt(5), ReasonSold, time.Now())

		delta, err := w.UpdateQuantity(decimal.NewFromInt(8))

		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(3)))
	})

	t.Run("returns negative delta when quantity shrinks", func(t *testing.T) {
		w, _ := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.NewFromInt(5), ReasonSold, time.Now())

		delta, err := w.UpdateQuantity(decimal.NewFromInt(2))

		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-3)))
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		w, _ := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.NewFromInt(5), ReasonSold, time.Now())

		_, err := w.UpdateQuantity(decimal.Zero)

		assert.Error(t, err)
	})
}

func TestWithdrawalUpdatePricing(t *testing.T) {
	t.Run("rejects pricing on a non order line", func(t *testing.T) {
		w, _ := NewWithdrawal(ItemTypeProduct, uuid.New(), decimal.NewFromInt(1), ReasonDamaged, time.Now())

		err := w.UpdatePricing(LinePricing{PriceType: ptrPriceType(PriceTypeUnit)})

		assert.Error(t, err)
	})

	t.Run("replaces pricing on an order line", func(t *testing.T) {
		w, _ := NewOrderLine(uuid.New(), decimal.NewFromInt(1), uuid.New(), LinePricing{PriceType: ptrPriceType(PriceTypeUnit)}, time.Now())

		err := w.UpdatePricing(LinePricing{CustomPrice: ptrDecimal(decimal.NewFromInt(150))})

		require.NoError(t, err)
		assert.Nil(t, w.PriceType)
		require.NotNil(t, w.CustomPrice)
		assert.True(t, w.CustomPrice.Equal(decimal.NewFromInt(150)))
	})
}
