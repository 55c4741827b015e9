package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/bootstrap"
	"github.com/Domenick1991/goaholidays/internal/cache"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	"github.com/Domenick1991/goaholidays/internal/metrics"
	"github.com/Domenick1991/goaholidays/internal/service/booking"
	"github.com/Domenick1991/goaholidays/internal/service/enquiry"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	// The server comes up before the database; requests are gated until it connects.
	go func() {
		if err := store.Supervisor.Run(ctx); err != nil {
			log.Printf("store supervisor stopped: %v", err)
		}
	}()

	var bookingOpts []booking.BookingServiceOption
	var enquiryOpts []enquiry.EnquiryServiceOption

	bookingOpts = append(bookingOpts, booking.WithRecomputedPrices(cfg.Booking.RecomputePrices))

	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.BookingsCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}

	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("kafka not reachable yet, events may be dropped: %v", err)
		}
		bookingOpts = append(bookingOpts, booking.WithEvents(producer, cfg.Kafka.EventsTopic, cfg.Kafka.NotificationsTopic))
		enquiryOpts = append(enquiryOpts, enquiry.WithEvents(producer, cfg.Kafka.EventsTopic, cfg.Kafka.NotificationsTopic))
	}

	router := bootstrap.NewRouter(cfg, bootstrap.Services{
		Bookings:  booking.NewBookingService(store.Bookings, store.Supervisor, bookingOpts...),
		Enquiries: enquiry.NewEnquiryService(store.Enquiries, store.Supervisor, enquiryOpts...),
		Store:     store.Supervisor,
		Metrics:   metrics.New(cfg.Metrics.App, store.Supervisor),
	})

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
