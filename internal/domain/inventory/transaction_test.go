package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		txType  TransactionType
		isValid bool
	}{
		{TransactionTypeSale, true},
		{TransactionTypeReturn, true},
		{TransactionTypeAdjustment, true},
		{TransactionType("transfer"), false},
		{TransactionType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.txType.IsValid())
		})
	}
}

func TestNewTransaction(t *testing.T) {
	productID := uuid.New()

	t.Run("creates a signed ledger entry", func(t *testing.T) {
		tx, err := NewTransaction(productID, TransactionTypeSale, -3)
		require.NoError(t, err)
		assert.Equal(t, productID, tx.ProductID)
		assert.Equal(t, -3, tx.Quantity)
		assert.True(t, tx.IsDeduction())
		assert.Nil(t, tx.OrderID)
		assert.Nil(t, tx.ActorID)
	})

	t.Run("positive quantity is a restoration", func(t *testing.T) {
		tx, err := NewTransaction(productID, TransactionTypeReturn, 3)
		require.NoError(t, err)
		assert.False(t, tx.IsDeduction())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewTransaction(productID, TransactionTypeAdjustment, 0)
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewTransaction(uuid.Nil, TransactionTypeSale, -1)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewTransaction(productID, TransactionType("transfer"), 1)
		assert.Error(t, err)
	})

	t.Run("optional linkage via builder helpers", func(t *testing.T) {
		orderID := uuid.New()
		actorID := uuid.New()
		tx, err := NewTransaction(productID, TransactionTypeSale, -2)
		require.NoError(t, err)
		tx.WithOrderID(orderID).WithActorID(actorID).WithMemo("Order ORD20260830-0001")
		require.NotNil(t, tx.OrderID)
		assert.Equal(t, orderID, *tx.OrderID)
		require.NotNil(t, tx.ActorID)
		assert.Equal(t, actorID, *tx.ActorID)
		assert.Equal(t, "Order ORD20260830-0001", tx.Memo)
	})
}
