package notification

import (
	"testing"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("creates expiration alert", func(t *testing.T) {
		itemID := uuid.New()
		n, err := NewNotification(inventory.ItemTypeProduct, itemID, TypeExpirationAlert, "Ube Pandesal has expired batches")

		require.NoError(t, err)
		assert.Equal(t, itemID, n.ItemID)
		assert.Equal(t, TypeExpirationAlert, n.Type)
		assert.False(t, n.IsRead)
	})

	t.Run("fails with invalid item type", func(t *testing.T) {
		n, err := NewNotification(inventory.ItemType("bogus"), uuid.New(), TypeLowStock, "msg")

		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("fails with invalid notification type", func(t *testing.T) {
		n, err := NewNotification(inventory.ItemTypeProduct, uuid.New(), NotificationType("PROMO"), "msg")

		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("fails with empty message", func(t *testing.T) {
		n, err := NewNotification(inventory.ItemTypeProduct, uuid.New(), TypeLowStock, "")

		assert.Error(t, err)
		assert.Nil(t, n)
	})
}

func TestNotificationTouch(t *testing.T) {
	n, err := NewNotification(inventory.ItemTypeRawMaterial, uuid.New(), TypeLowStock, "Flour is low")
	require.NoError(t, err)
	n.MarkRead()
	require.True(t, n.IsRead)

	n.Touch("Flour is low: 2 kg remaining")

	assert.False(t, n.IsRead)
	assert.Equal(t, "Flour is low: 2 kg remaining", n.Message)
}

func TestNotificationMarkRead(t *testing.T) {
	n, err := NewNotification(inventory.ItemTypeProduct, uuid.New(), TypeExpirationAlert, "msg")
	require.NoError(t, err)

	n.MarkRead()

	assert.True(t, n.IsRead)
}
