package services

import (
	"encoding/json"
	"log"

	"receipts/internal/models"
	"receipts/internal/repositories"
	"receipts/internal/scoring"
	"receipts/internal/validation"
	"receipts/pkg/rabbitmq"
)

// ReceiptService handles business logic related to receipts.
type ReceiptService struct {
	repo     repositories.ReceiptRepository
	mqClient *rabbitmq.Client
}

// NewReceiptService creates a new ReceiptService. mqClient may be nil,
// in which case event publication is skipped.
func NewReceiptService(repo repositories.ReceiptRepository, mqClient *rabbitmq.Client) *ReceiptService {
	return &ReceiptService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// Submit validates the raw receipt fields, stores the receipt and
// returns its new identifier. On validation failure nothing is stored
// and the validation error is returned unchanged.
func (s *ReceiptService) Submit(retailer, purchaseDate, purchaseTime, total string, items []validation.RawItem) (string, error) {
	receipt, err := validation.MakeReceipt(retailer, purchaseDate, purchaseTime, total, items)
	if err != nil {
		return "", err
	}

	id, err := s.repo.Create(receipt)
	if err != nil {
		return "", err
	}

	s.publishProcessed(id, receipt)
	return id, nil
}

// Points returns the total score for the receipt stored under id.
func (s *ReceiptService) Points(id string) (int, error) {
	receipt, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}
	return scoring.TotalScore(receipt), nil
}

// Get returns the receipt stored under id.
func (s *ReceiptService) Get(id string) (*models.Receipt, error) {
	return s.repo.GetByID(id)
}

// publishProcessed emits a receipt.processed event. Publish failures are
// logged and never fail the submission.
func (s *ReceiptService) publishProcessed(id string, receipt *models.Receipt) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"receiptID": id,
		"retailer":  receipt.Retailer,
		"total":     receipt.Total,
		"itemCount": len(receipt.Items),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal receipt event to JSON: %v", err)
		return
	}

	if err := s.mqClient.Publish("receipt.processed", body); err != nil {
		log.Printf("Warning: Failed to publish receipt processed event for receipt %s: %v", id, err)
	} else {
		log.Printf("Successfully published receipt processed event for receipt %s", id)
	}
}
