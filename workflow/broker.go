package workflow

import (
	"fmt"

	"github.com/RigelNana/arktube/config"
)

// NewPublisher 按配置选择 Kafka 或 RabbitMQ
func NewPublisher(cfg config.WorkflowConfig) (Publisher, error) {
	switch cfg.Broker {
	case "kafka":
		return NewKafkaPublisher(cfg.Brokers(), cfg.KafkaTopic), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	case "none", "":
		return disabledPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown workflow broker %q", cfg.Broker)
	}
}

func NewConsumer(cfg config.WorkflowConfig) (Consumer, error) {
	switch cfg.Broker {
	case "kafka":
		return NewKafkaConsumer(cfg.Brokers(), cfg.KafkaTopic, cfg.KafkaGroupID), nil
	case "amqp":
		return NewAMQPConsumer(cfg.AMQPURL, cfg.AMQPQueue)
	default:
		return nil, ErrDisabled
	}
}
