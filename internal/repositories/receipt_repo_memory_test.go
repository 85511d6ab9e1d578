package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"receipts/internal/models"
	"receipts/internal/repositories"
)

func testReceipt() *models.Receipt {
	return &models.Receipt{
		Retailer:     "Target",
		PurchaseDate: "2023-06-20",
		PurchaseTime: "10:30",
		Total:        "16.98",
		Items: []models.Item{
			{ShortDescription: "Item 1", Price: "10.99"},
			{ShortDescription: "Item 2", Price: "5.99"},
		},
	}
}

func TestMemoryReceiptRepository_CreateAndGet(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()

	id, err := repo.Create(testReceipt())
	assert.NoError(t, err)

	// The identifier is a canonical hyphenated UUID
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	stored, err := repo.GetByID(id)
	assert.NoError(t, err)
	assert.Equal(t, "Target", stored.Retailer)
	assert.Len(t, stored.Items, 2)

	// Repeated reads return identical results
	again, err := repo.GetByID(id)
	assert.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestMemoryReceiptRepository_DistinctIDs(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := repo.Create(testReceipt())
		assert.NoError(t, err)
		assert.False(t, seen[id], "identifier %s was assigned twice", id)
		seen[id] = true
	}
}

func TestMemoryReceiptRepository_NotFound(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()

	receipt, err := repo.GetByID(uuid.New().String())
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, repositories.ErrReceiptNotFound)
}

func TestMemoryReceiptRepository_CallerReceiptNotMutated(t *testing.T) {
	repo := repositories.NewMemoryReceiptRepository()

	receipt := testReceipt()
	_, err := repo.Create(receipt)
	assert.NoError(t, err)
	assert.Empty(t, receipt.ID)
}
