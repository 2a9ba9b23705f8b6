package producers

import (
	"errors"
	"testing"
	"time"

	"github.com/account-ledger/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureTopic(t *testing.T) {
	originalBackoff := topicReadBackoff
	topicReadBackoff = 0
	t.Cleanup(func() { topicReadBackoff = originalBackoff })

	t.Run("ExistingTopicIsLeftAlone", func(t *testing.T) {
		admin := new(mockTopicAdmin)
		admin.On("ReadPartitions", []string{"ledger_events"}).Return([]kafka.Partition{{Topic: "ledger_events"}}, nil).Once()

		require.NoError(t, ensureTopic(admin, "ledger_events", 3, 1, discardLogger()))
		admin.AssertNotCalled(t, "CreateTopics", mock.Anything)
	})

	t.Run("MissingTopicIsCreatedWithDefaults", func(t *testing.T) {
		admin := new(mockTopicAdmin)
		admin.On("ReadPartitions", []string{"dlq"}).Return([]kafka.Partition{}, nil).Once()
		admin.On("CreateTopics", []kafka.TopicConfig{{Topic: "dlq", NumPartitions: 1, ReplicationFactor: 1}}).Return(nil).Once()

		require.NoError(t, ensureTopic(admin, "dlq", 0, 0, discardLogger()))
		admin.AssertExpectations(t)
	})

	t.Run("RetriesReadsThenCreates", func(t *testing.T) {
		admin := new(mockTopicAdmin)
		admin.On("ReadPartitions", []string{"ops"}).Return(nil, errors.New("leader not available")).Times(topicReadAttempts)
		admin.On("CreateTopics", mock.Anything).Return(nil).Once()

		require.NoError(t, ensureTopic(admin, "ops", 2, 1, discardLogger()))
		admin.AssertExpectations(t)
	})

	t.Run("CreateFailure", func(t *testing.T) {
		admin := new(mockTopicAdmin)
		createErr := errors.New("not authorized")
		admin.On("ReadPartitions", []string{"ops"}).Return([]kafka.Partition{}, nil).Once()
		admin.On("CreateTopics", mock.Anything).Return(createErr).Once()

		err := ensureTopic(admin, "ops", 1, 1, discardLogger())
		assert.ErrorIs(t, err, createErr)
	})
}

func TestNewWriter(t *testing.T) {
	cfg := &config.KafkaConfig{Brokers: "localhost:9092", MaxWait: 2 * time.Second}

	w := newWriter(cfg, "ledger_events", kafka.RequireOne, discardLogger())

	assert.Equal(t, "ledger_events", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async, "publish errors must come back from WriteMessages")
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, 2*time.Second, w.WriteTimeout)
	assert.NotNil(t, w.Completion)
}
