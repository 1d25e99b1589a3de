// cmd/worker/main.go
package main

import (
	"log"

	"github.com/streadway/amqp"

	"github.com/openchurch/campaign-service/internal/config"
	"github.com/openchurch/campaign-service/internal/db"
	"github.com/openchurch/campaign-service/internal/events"
	"github.com/openchurch/campaign-service/internal/repository"
)

// The worker drains the campaign event queue and appends every event to the
// campaign_events audit table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	dbConn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}

	consumer := &events.Consumer{
		Store: &repository.EventRepository{DB: dbConn},
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		events.QueueName, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			if err := consumer.Handle(d.Body); err != nil {
				log.Println("Failed to record event:", err)
				d.Nack(false, true) // requeue
				continue
			}
			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for events...")
	<-forever
}
