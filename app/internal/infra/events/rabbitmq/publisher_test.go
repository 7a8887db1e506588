package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	domcart "example.com/shareeghor/app/internal/domain/cart"
	domorder "example.com/shareeghor/app/internal/domain/order"
	domproduct "example.com/shareeghor/app/internal/domain/product"
)

type fakeChannel struct {
	declared   string
	declareErr error
	publishErr error
	keys       []string
	messages   []amqp.Publishing
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = name
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleOrder() *domorder.Order {
	return &domorder.Order{
		TrackingID: "BD-WC-LOYW3V28-AB12C",
		Items: []domcart.Line{{
			Product:       domproduct.Product{ID: 7, Name: "Block Print Cotton Kurti", Price: 850},
			Quantity:      2,
			SelectedSize:  "M",
			SelectedColor: "Indigo",
		}},
		Subtotal:       1700,
		DeliveryCharge: 60,
		Total:          1760,
		ShippingInfo:   domorder.ShippingInfo{FullName: "Farzana Akter", Phone: "+8801812345678", City: "Dhaka"},
		PaymentMethod:  domorder.PaymentCOD,
		OrderDate:      time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_PublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "orders")
	require.NoError(t, err)
	require.Equal(t, "orders", ch.declared)

	require.NoError(t, p.PublishOrderPlaced(context.Background(), sampleOrder()))

	require.Equal(t, []string{"orders"}, ch.keys)
	msg := ch.messages[0]
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, EventOrderPlaced, msg.Type)
	require.Equal(t, "BD-WC-LOYW3V28-AB12C", msg.MessageId)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var body OrderPlacedMessage
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	require.Equal(t, EventOrderPlaced, body.Event)
	require.Equal(t, 1760.0, body.Total)
	require.Equal(t, "Dhaka", body.City)
	require.Len(t, body.Items, 1)
	require.Equal(t, int64(7), body.Items[0].ProductID)
	require.Equal(t, "M", body.Items[0].Size)
	require.NotContains(t, string(msg.Body), "+8801812345678")
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newPublisher(ch, "orders")
	require.NoError(t, err)

	err = p.PublishOrderPlaced(context.Background(), sampleOrder())
	require.ErrorContains(t, err, "channel closed")
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}

	_, err := newPublisher(ch, "orders")
	require.ErrorContains(t, err, "declare queue orders")
	require.True(t, ch.closed)
}
