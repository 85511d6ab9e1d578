package repositories

import (
	"sync"

	"github.com/google/uuid"

	"receipts/internal/models"
)

// MemoryReceiptRepository is an in-memory implementation of
// ReceiptRepository. Entries live for the process lifetime.
type MemoryReceiptRepository struct {
	receipts map[string]models.Receipt
	mu       sync.RWMutex
}

// NewMemoryReceiptRepository creates a new instance of MemoryReceiptRepository.
func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{
		receipts: make(map[string]models.Receipt),
	}
}

// Create stores the receipt under a fresh random identifier. The
// identifier is generated and checked under the write lock so no two
// submissions can ever share one.
func (r *MemoryReceiptRepository) Create(receipt *models.Receipt) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	for {
		if _, exists := r.receipts[id]; !exists {
			break
		}
		id = uuid.New().String()
	}

	stored := *receipt
	stored.ID = id
	r.receipts[id] = stored
	return id, nil
}

// GetByID returns the receipt stored under id.
func (r *MemoryReceiptRepository) GetByID(id string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	return &receipt, nil
}
