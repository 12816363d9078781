package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, ch, err := openQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: queue}, nil
}

// openQueue 连接并声明持久化队列
func openQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return conn, ch, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.RunID.String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

type AMQPConsumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPConsumer(url, queue string) (*AMQPConsumer, error) {
	conn, ch, err := openQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &AMQPConsumer{conn: conn, ch: ch, queue: queue}, nil
}

func (c *AMQPConsumer) Run(ctx context.Context, handle Handler) error {
	msgs, err := c.ch.Consume(
		c.queue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("amqp delivery channel closed")
			}
			var job Job
			if err := json.Unmarshal(d.Body, &job); err != nil {
				_ = d.Nack(false, false)
				continue
			}
			_ = handle(ctx, job)
			_ = d.Ack(false)
		}
	}
}

func (c *AMQPConsumer) Close() error {
	c.ch.Close()
	return c.conn.Close()
}
