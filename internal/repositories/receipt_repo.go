package repositories

import (
	"errors"

	"receipts/internal/models"
)

// ErrReceiptNotFound signals a clean miss on lookup. It is the only
// error the read path can return.
var ErrReceiptNotFound = errors.New("receipt not found")

// ReceiptRepository defines the interface for receipt storage. Receipts
// are written exactly once at submission; there are no update or delete
// operations.
type ReceiptRepository interface {
	// Create assigns a fresh identifier to the receipt, stores it, and
	// returns the identifier. Identifier assignment and insertion are
	// atomic as a unit.
	Create(receipt *models.Receipt) (string, error)
	// GetByID returns the receipt stored under id, or ErrReceiptNotFound.
	GetByID(id string) (*models.Receipt, error)
}
