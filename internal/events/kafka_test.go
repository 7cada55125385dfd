package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storefront-be/internal/logger"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	event := Event{
		Type:        CartItemAdded,
		Key:         "user:1",
		ProductCode: "P1",
		Quantity:    3,
		OccurredAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		w := new(MockWriter)
		w.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || string(msgs[0].Key) != "user:1" {
				return false
			}
			var got Event
			if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
				return false
			}
			return got.Type == CartItemAdded && got.ProductCode == "P1" && got.Quantity == 3 &&
				string(msgs[0].Headers[0].Value) == CartItemAdded
		})).Return(nil)

		p := &KafkaPublisher{writer: w}
		require.NoError(t, p.Publish(ctx, event))
		w.AssertExpectations(t)
	})

	t.Run("WriteError", func(t *testing.T) {
		w := new(MockWriter)
		w.On("WriteMessages", ctx, mock.Anything).Return(errors.New("broker down"))

		p := &KafkaPublisher{writer: w}
		err := p.Publish(ctx, event)
		assert.EqualError(t, err, "publish cart.item_added: broker down")
	})
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := new(MockWriter)
	w.On("Close").Return(nil)

	p := &KafkaPublisher{writer: w}
	assert.NoError(t, p.Close())
	w.AssertExpectations(t)
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher("localhost:9092", "cart.events")
	kw, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "cart.events", kw.Topic)
	assert.Equal(t, "localhost:9092", kw.Addr.String())
	assert.True(t, kw.Async)
	assert.Equal(t, 10*time.Millisecond, kw.BatchTimeout)
	require.NotNil(t, kw.Completion)
}

func TestLogDelivery(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	defer logger.Replace(zap.New(core))()

	msgs := []kafka.Message{{Topic: "cart.events", Key: []byte("user:1")}}

	logDelivery(msgs, nil)
	assert.Equal(t, 0, observed.Len())

	logDelivery(msgs, errors.New("broker down"))
	entries := observed.FilterMessage("failed to deliver cart event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "user:1", entries[0].ContextMap()["cart"])
	assert.Equal(t, "broker down", entries[0].ContextMap()["error"])
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: CartCleared}))
	assert.NoError(t, p.Close())
}
