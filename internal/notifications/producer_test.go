package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stampcard/pkg/logger"
)

func TestKafkaPublisherSendsEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	var got DrawEvent
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &got)
	})

	pub := NewKafkaPublisherWithProducer(producer, DefaultKafkaProducerConfig([]string{"k:9092"}, "lucky-draw-events"))
	event := NewWinnersAnnounced("sess-1", uuid.New(), []string{"A", "C"}, "Congratulations to our winners: A, C!", false, 2)

	require.NoError(t, pub.PublishDrawEvent(context.Background(), event))
	assert.Equal(t, EventTypeWinnersAnnounced, got.Type)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, []string{"A", "C"}, got.Winners)
}

func TestKafkaPublisherWrapsSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, DefaultKafkaProducerConfig(nil, "t"))
	err := pub.PublishDrawEvent(context.Background(), NewWinnersAnnounced("s", uuid.New(), []string{"A"}, "x", true, 1))
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
}

func TestHeaders(t *testing.T) {
	pub := NewKafkaPublisherWithProducer(nil, DefaultKafkaProducerConfig(nil, "t"))
	event := NewWinnersAnnounced("s", uuid.New(), []string{"A", "B", "C"}, "x", true, 3)

	headers := map[string]string{}
	for _, h := range pub.createHeaders(event) {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, "WINNERS_ANNOUNCED", headers["event_type"])
	assert.Equal(t, "3", headers["winner_count"])
	assert.Equal(t, "s", event.GetPartitionKey())
}

func TestLogPublisher(t *testing.T) {
	pub := NewLogPublisher(logger.Discard())
	assert.NoError(t, pub.PublishDrawEvent(context.Background(), NewWinnersAnnounced("s", uuid.New(), nil, "", false, 0)))
	assert.NoError(t, pub.Close())
}
