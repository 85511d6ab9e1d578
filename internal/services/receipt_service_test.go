package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"receipts/internal/models"
	"receipts/internal/repositories"
	"receipts/internal/services"
	"receipts/internal/validation"
)

// MockReceiptRepository is a mock implementation of repositories.ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(receipt *models.Receipt) (string, error) {
	args := m.Called(receipt)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptRepository) GetByID(id string) (*models.Receipt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func validItems() []validation.RawItem {
	return []validation.RawItem{
		{ShortDescription: "Item 1", Price: "10.99"},
		{ShortDescription: "Item 2", Price: "5.99"},
	}
}

func TestReceiptService_Submit(t *testing.T) {
	mockRepo := new(MockReceiptRepository)
	service := services.NewReceiptService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Receipt")).Return("adb6b560-0eef-42bc-9d16-df48f30e89b2", nil).Once()

	id, err := service.Submit("Target", "2023-06-20", "10:30", "16.98", validItems())
	assert.NoError(t, err)
	assert.Equal(t, "adb6b560-0eef-42bc-9d16-df48f30e89b2", id)
	mockRepo.AssertExpectations(t)
}

func TestReceiptService_SubmitInvalid(t *testing.T) {
	mockRepo := new(MockReceiptRepository)
	service := services.NewReceiptService(mockRepo, nil)

	// An invalid field fails the submission before the store is touched
	id, err := service.Submit("Target", "2023-13-20", "10:30", "16.98", validItems())
	assert.ErrorIs(t, err, validation.ErrInvalidReceipt)
	assert.Empty(t, id)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)

	id, err = service.Submit("Target", "2023-06-20", "10:30", "16.98", nil)
	assert.ErrorIs(t, err, validation.ErrInvalidReceipt)
	assert.Empty(t, id)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReceiptService_Points(t *testing.T) {
	mockRepo := new(MockReceiptRepository)
	service := services.NewReceiptService(mockRepo, nil)

	receipt := &models.Receipt{
		Retailer:     "Target",
		PurchaseDate: "2023-06-20",
		PurchaseTime: "10:30",
		Total:        "16.98",
		Items: []models.Item{
			{ShortDescription: "Item 1", Price: "10.99"},
			{ShortDescription: "Item 2", Price: "5.99"},
		},
	}

	mockRepo.On("GetByID", "known-id").Return(receipt, nil).Twice()

	points, err := service.Points("known-id")
	assert.NoError(t, err)
	assert.Equal(t, 16, points)

	// Reads are idempotent
	again, err := service.Points("known-id")
	assert.NoError(t, err)
	assert.Equal(t, points, again)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "missing-id").Return(nil, repositories.ErrReceiptNotFound).Once()
	_, err = service.Points("missing-id")
	assert.ErrorIs(t, err, repositories.ErrReceiptNotFound)
	mockRepo.AssertExpectations(t)
}

func TestReceiptService_Get(t *testing.T) {
	mockRepo := new(MockReceiptRepository)
	service := services.NewReceiptService(mockRepo, nil)

	receipt := &models.Receipt{Retailer: "Walgreens", PurchaseDate: "2022-01-02", PurchaseTime: "08:13", Total: "2.65"}
	mockRepo.On("GetByID", "known-id").Return(receipt, nil).Once()

	got, err := service.Get("known-id")
	assert.NoError(t, err)
	assert.Equal(t, receipt, got)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "missing-id").Return(nil, repositories.ErrReceiptNotFound).Once()
	got, err = service.Get("missing-id")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repositories.ErrReceiptNotFound)
	mockRepo.AssertExpectations(t)
}
