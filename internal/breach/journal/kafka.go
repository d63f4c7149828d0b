// Package journal publishes dispatched breach events to Kafka for downstream
// consumers (location history, parental dashboards). It is a best-effort feed:
// the pipeline logs publish failures and moves on, so a broker outage never
// delays or drops a notification.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"safecircle/internal/breach"
)

// KafkaJournal writes one record per breach event, keyed by user id so a
// partitioned topic preserves the subsystem's per-user ordering for
// consumers.
type KafkaJournal struct {
	client *kgo.Client
	topic  string
}

// NewKafkaJournal connects to the brokers and ensures the topic exists.
func NewKafkaJournal(ctx context.Context, brokers []string, topic string) (*KafkaJournal, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}
	return &KafkaJournal{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	responses, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, response := range responses {
		if response.Err != nil && !errors.Is(response.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, response.Err)
		}
	}
	return nil
}

// Publish produces one JSON record for the event and waits for the broker
// acknowledgement.
func (j *KafkaJournal) Publish(ctx context.Context, event breach.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode breach event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.UserID),
		Value: payload,
	}
	if err := j.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce breach event: %w", err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (j *KafkaJournal) Close() {
	j.client.Close()
}
