package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Run("adds amounts of the same currency", func(t *testing.T) {
		sum, err := NewMoneyPHPFromFloat(10.25).Add(NewMoneyPHPFromFloat(5.50))

		require.NoError(t, err)
		assert.True(t, sum.Equals(NewMoneyPHPFromFloat(15.75)))
	})

	t.Run("subtracts amounts", func(t *testing.T) {
		diff, err := NewMoneyPHPFromFloat(10).Subtract(NewMoneyPHPFromFloat(2.5))

		require.NoError(t, err)
		assert.True(t, diff.Equals(NewMoneyPHPFromFloat(7.5)))
	})

	t.Run("multiplies by a quantity", func(t *testing.T) {
		total := NewMoneyPHPFromFloat(12.5).Multiply(decimal.NewFromInt(4))

		assert.True(t, total.Equals(NewMoneyPHPFromFloat(50)))
	})
}

func TestMoneyApplyDiscount(t *testing.T) {
	t.Run("applies a percentage discount", func(t *testing.T) {
		discounted := NewMoneyPHPFromFloat(200).ApplyDiscount(decimal.NewFromInt(25))

		assert.True(t, discounted.Equals(NewMoneyPHPFromFloat(150)))
	})

	t.Run("full discount yields zero", func(t *testing.T) {
		discounted := NewMoneyPHPFromFloat(99.99).ApplyDiscount(decimal.NewFromInt(100))

		assert.True(t, discounted.IsZero())
	})
}

func TestMoneyRound(t *testing.T) {
	rounded := NewMoneyPHP(decimal.RequireFromString("10.005")).Round(2)

	assert.Equal(t, "10.01", rounded.Amount().StringFixed(2))
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyPHPFromFloat(42.5))
	require.NoError(t, err)

	var m Money
	require.NoError(t, json.Unmarshal(data, &m))
	assert.True(t, m.Equals(NewMoneyPHPFromFloat(42.5)))
}
