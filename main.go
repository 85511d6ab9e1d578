package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"receipts/internal/handlers"
	"receipts/internal/models"
	"receipts/internal/repositories"
	"receipts/internal/services"
	"receipts/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	storeDriver := viper.GetString("STORE_DRIVER")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	// Eventing is off unless a broker URL is configured; the service
	// skips publication when the client is nil.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		mqClient = client
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, receipt event publishing disabled")
	}

	// --- Initialize Repository ---
	receiptRepo, err := newReceiptRepository(storeDriver, databaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize receipt store (%s): %v", storeDriver, err)
	}

	// --- Initialize Service and Handler ---
	receiptService := services.NewReceiptService(receiptRepo, mqClient)
	receiptHandler := handlers.NewReceiptHandler(receiptService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	receiptHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  storeDriver,
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for receipt events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Receipt Event (Tag: %d, Type: %s): %s", msg.DeliveryTag, msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeReceiptEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newReceiptRepository builds the receipt store selected by STORE_DRIVER.
// The memory driver is the default; sqlite and postgres share the GORM
// implementation behind the same interface.
func newReceiptRepository(driver, dsn string) (repositories.ReceiptRepository, error) {
	switch driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&models.Receipt{}); err != nil {
			return nil, err
		}
		return repositories.NewGORMReceiptRepository(db), nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&models.Receipt{}); err != nil {
			return nil, err
		}
		return repositories.NewGORMReceiptRepository(db), nil
	default:
		return repositories.NewMemoryReceiptRepository(), nil
	}
}
