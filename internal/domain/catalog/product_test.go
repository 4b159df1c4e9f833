package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		p, err := NewProduct("Ube Pandesal", "UBE-PDL", "pc", decimal.NewFromInt(12), decimal.NewFromInt(15))

		require.NoError(t, err)
		assert.Equal(t, "Ube Pandesal", p.Name)
		assert.Equal(t, "UBE-PDL", p.SKU)
		assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(12)))
		assert.True(t, p.SRPPrice.Equal(decimal.NewFromInt(15)))
		assert.False(t, p.IsArchived)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		p, err := NewProduct("", "SKU", "pc", decimal.NewFromInt(1), decimal.NewFromInt(1))

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		p, err := NewProduct("Pastillas", "PAS", "pack", decimal.NewFromInt(-5), decimal.NewFromInt(10))

		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestProductUpdatePrices(t *testing.T) {
	p, err := NewProduct("Yema", "YEM", "jar", decimal.NewFromInt(80), decimal.NewFromInt(95))
	require.NoError(t, err)

	t.Run("updates both prices", func(t *testing.T) {
		err := p.UpdatePrices(decimal.NewFromInt(85), decimal.NewFromInt(99))

		require.NoError(t, err)
		assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(85)))
		assert.True(t, p.SRPPrice.Equal(decimal.NewFromInt(99)))
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		assert.Error(t, p.UpdatePrices(decimal.NewFromInt(-1), decimal.NewFromInt(99)))
	})
}

func TestProductArchive(t *testing.T) {
	p, err := NewProduct("Leche Flan", "LFL", "tray", decimal.NewFromInt(150), decimal.NewFromInt(180))
	require.NoError(t, err)

	p.Archive()

	assert.True(t, p.IsArchived)
}
