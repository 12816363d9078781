package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RigelNana/arktube/pkg/metrics"
	kafka "github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}),
		topic: topic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.VideoID.String()),
		Value: payload,
	})
	if err != nil {
		metrics.KafkaMessagesTotal.WithLabelValues(metrics.ServiceName, p.topic, "publish_failed").Inc()
		return fmt.Errorf("write kafka message: %w", err)
	}
	metrics.KafkaMessagesTotal.WithLabelValues(metrics.ServiceName, p.topic, "published").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type KafkaConsumer struct {
	reader *kafka.Reader
	topic  string
}

func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10 << 20,
		}),
		topic: topic,
	}
}

// Run 拉取 -> 解析 -> 处理 -> 提交位点；处理失败也提交，重试由 Handler 重新投递
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			metrics.KafkaMessagesTotal.WithLabelValues(metrics.ServiceName, c.topic, "fetch_failed").Inc()
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		var job Job
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			metrics.KafkaMessagesTotal.WithLabelValues(metrics.ServiceName, c.topic, "bad_payload").Inc()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		status := "consumed"
		if err := handle(ctx, job); err != nil {
			status = "failed"
		}
		metrics.KafkaMessagesTotal.WithLabelValues(metrics.ServiceName, c.topic, status).Inc()

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() != nil {
			return nil
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
