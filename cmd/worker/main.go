package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/email"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Kafka.Enabled() {
		log.Fatalf("worker needs kafka.brokers (or KAFKA_BROKERS)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	log.Printf("notification worker consuming %s", cfg.Kafka.NotificationsTopic)
	err = consumer.Consume(ctx, notify(emailSender))
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("notification worker stopped")
}

type notifier interface {
	Send(ctx context.Context, event kafka.Event) error
}

// notify handles one message. Bad messages are logged and skipped so the consumer keeps going.
func notify(sender notifier) func(context.Context, kafkaGo.Message) error {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeEvent(msg)
		if err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("send notification for %s %s failed: %v", event.Type, event.ID, err)
		}
		return nil
	}
}
