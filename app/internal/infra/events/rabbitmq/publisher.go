package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	domorder "example.com/shareeghor/app/internal/domain/order"
)

const EventOrderPlaced = "order.placed"

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type orderLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderPlacedMessage is the body published for every placed order. Contact
// details beyond the city are left out.
type OrderPlacedMessage struct {
	Event         string      `json:"event"`
	TrackingID    string      `json:"trackingId"`
	Items         []orderLine `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Delivery      float64     `json:"deliveryCharge"`
	Total         float64     `json:"total"`
	City          string      `json:"city"`
	PaymentMethod string      `json:"paymentMethod"`
	OrderDate     time.Time   `json:"orderDate"`
}

// Publisher sends order events to a durable queue on the default exchange.
type Publisher struct {
	ch    channel
	conn  *amqp.Connection
	queue string
}

// Dial connects to the broker and declares queue.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	p, err := newPublisher(ch, queue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string) (*Publisher, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &Publisher{ch: ch, queue: q.Name}, nil
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *domorder.Order) error {
	body, err := json.Marshal(newOrderPlacedMessage(order))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    order.TrackingID,
			Type:         EventOrderPlaced,
			Timestamp:    order.OrderDate,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", order.TrackingID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func newOrderPlacedMessage(order *domorder.Order) OrderPlacedMessage {
	items := make([]orderLine, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, orderLine{
			ProductID: line.ID,
			Name:      line.Name,
			Size:      line.SelectedSize,
			Color:     line.SelectedColor,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return OrderPlacedMessage{
		Event:         EventOrderPlaced,
		TrackingID:    order.TrackingID,
		Items:         items,
		Subtotal:      order.Subtotal,
		Delivery:      order.DeliveryCharge,
		Total:         order.Total,
		City:          order.ShippingInfo.City,
		PaymentMethod: string(order.PaymentMethod),
		OrderDate:     order.OrderDate,
	}
}
