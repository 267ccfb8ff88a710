package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	pkgkafka "github.com/SftwreDev/talipapaup-backend/pkg/kafka"
)

// Kafka topic constants for store domain events.
const (
	TopicProductCreated = "talipapa.product.created"
	TopicProductUpdated = "talipapa.product.updated"
	TopicProductDeleted = "talipapa.product.deleted"
	TopicCartUpdated    = "talipapa.cart.updated"
	TopicCartCleared    = "talipapa.cart.cleared"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeCart    = "cart"
)

// Source identifier for events originating from this service.
const SourceStoreService = "talipapa-backend"

// ProductEventData is the payload for product.created and product.updated events.
type ProductEventData struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImgURL      *string         `json:"img_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// CartUpdatedData is the payload for a cart.updated event. It is emitted
// whenever a cart line is added, merged, overwritten, or removed.
type CartUpdatedData struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	TotalQty  int    `json:"total_qty"`
	Action    string `json:"action"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID       string `json:"user_id"`
	LinesRemoved int64  `json:"lines_removed"`
}

// Producer publishes store domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productData(p *domain.Product) ProductEventData {
	return ProductEventData{
		ID:          p.ID.String(),
		ProductName: p.ProductName,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImgURL:      p.ImgURL,
		IsAvailable: p.IsAvailable,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID.String(), AggregateTypeProduct, SourceStoreService, productData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID.String()),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID.String(), AggregateTypeProduct, SourceStoreService, productData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID.String()),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, id, AggregateTypeProduct, SourceStoreService, ProductDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event. The aggregate ID is the
// user ID so all events for one user's cart land on the same partition.
func (p *Producer) PublishCartUpdated(ctx context.Context, line *domain.CartLine, action string) error {
	data := CartUpdatedData{
		UserID:    line.UserID,
		ProductID: line.ProductID.String(),
		TotalQty:  line.TotalQty,
		Action:    action,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, line.UserID, AggregateTypeCart, SourceStoreService, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", line.UserID),
		slog.String("product_id", line.ProductID.String()),
		slog.String("action", action),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string, removed int64) error {
	data := CartClearedData{UserID: userID, LinesRemoved: removed}

	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceStoreService, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
		slog.Int64("lines_removed", removed),
	)

	return nil
}
