package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"receipts/internal/repositories"
	"receipts/internal/services"
	"receipts/internal/validation"
)

// ReceiptHandler handles HTTP requests for receipts.
type ReceiptHandler struct {
	service  *services.ReceiptService
	validate *validator.Validate
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(service *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the receipt routes with the Fiber app.
func (h *ReceiptHandler) RegisterRoutes(router fiber.Router) {
	receiptRoutes := router.Group("/receipts")
	receiptRoutes.Post("/process", h.HandleProcessReceipt)
	receiptRoutes.Get("/:id/points", h.HandleGetPoints)
	receiptRoutes.Get("/:id", h.HandleGetReceipt)
}

// itemRequest is one item entry as submitted by the caller.
type itemRequest struct {
	ShortDescription string `json:"shortDescription" validate:"required"`
	Price            string `json:"price" validate:"required"`
}

// receiptRequest is the raw submission body. Retailer carries no tag on
// purpose: empty and symbol-only retailer values are accepted.
type receiptRequest struct {
	Retailer     string        `json:"retailer"`
	PurchaseDate string        `json:"purchaseDate"`
	PurchaseTime string        `json:"purchaseTime"`
	Total        string        `json:"total"`
	Items        []itemRequest `json:"items" validate:"required,min=1,dive"`
}

// invalidReceipt is the single response body every submission failure
// collapses to; callers only learn pass/fail.
func invalidReceipt(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"description": "The receipt is invalid",
	})
}

// HandleProcessReceipt validates and stores a submitted receipt and
// returns its generated identifier.
func (h *ReceiptHandler) HandleProcessReceipt(c *fiber.Ctx) error {
	var req receiptRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing receipt request body: %v", err)
		return invalidReceipt(c)
	}

	if err := h.validate.Struct(req); err != nil {
		log.Printf("Receipt request failed structural validation: %v", err)
		return invalidReceipt(c)
	}

	items := make([]validation.RawItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, validation.RawItem{
			ShortDescription: item.ShortDescription,
			Price:            item.Price,
		})
	}

	id, err := h.service.Submit(req.Retailer, req.PurchaseDate, req.PurchaseTime, req.Total, items)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidReceipt) {
			return invalidReceipt(c)
		}
		log.Printf("Error storing receipt: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"description": "Could not process receipt",
		})
	}

	return c.JSON(fiber.Map{
		"id": id,
	})
}

// HandleGetPoints returns the points earned by the receipt stored under
// the given identifier.
func (h *ReceiptHandler) HandleGetPoints(c *fiber.Ctx) error {
	id := c.Params("id")
	points, err := h.service.Points(id)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"description": "No receipt found for that id",
			})
		}
		log.Printf("Error computing points for receipt %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"description": "Could not compute points",
		})
	}

	return c.JSON(fiber.Map{
		"points": points,
	})
}

// HandleGetReceipt returns the stored receipt with its fields in the
// fixed order retailer, purchaseDate, purchaseTime, total, items. The
// miss path deliberately keeps the 200 status with an error body, for
// compatibility with existing clients of this endpoint.
func (h *ReceiptHandler) HandleGetReceipt(c *fiber.Ctx) error {
	id := c.Params("id")
	receipt, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return c.JSON(fiber.Map{
				"error": "Receipt ID not found",
			})
		}
		log.Printf("Error getting receipt %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve receipt",
		})
	}

	return c.JSON(receipt)
}
