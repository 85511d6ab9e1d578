package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"receipts/internal/models"
)

// GORMReceiptRepository is a GORM implementation of ReceiptRepository.
// Items are stored through GORM's JSON serializer.
type GORMReceiptRepository struct {
	db *gorm.DB
}

// NewGORMReceiptRepository creates a new instance of GORMReceiptRepository.
func NewGORMReceiptRepository(db *gorm.DB) *GORMReceiptRepository {
	return &GORMReceiptRepository{
		db: db,
	}
}

// Create stores the receipt under a fresh random identifier. The
// primary-key constraint backs the uniqueness guarantee here.
func (r *GORMReceiptRepository) Create(receipt *models.Receipt) (string, error) {
	stored := *receipt
	stored.ID = uuid.New().String()
	if err := r.db.Create(&stored).Error; err != nil {
		return "", fmt.Errorf("failed to create receipt: %w", err)
	}
	return stored.ID, nil
}

// GetByID returns the receipt stored under id.
func (r *GORMReceiptRepository) GetByID(id string) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt by ID %s: %w", id, err)
	}
	return &receipt, nil
}
