// The consumer binary subscribes to the upstream push topics and feeds every
// event through the ingestion gateway. It shares the Mongo index with the API
// binary; the store's per-document replace is the only coordination between
// the two.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/db"
	"github.com/facundo-gs/busqueda-api/eventbus"
	"github.com/facundo-gs/busqueda-api/events"
	"github.com/facundo-gs/busqueda-api/metrics"
	"github.com/facundo-gs/busqueda-api/repositories"
	"github.com/facundo-gs/busqueda-api/services"
)

func main() {
	config.InitApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}
	metrics.Register()

	cfg := config.GetConfig()
	repo := repositories.NewHechoRepository(db.Database())
	svc := services.NewIndexacionService(repo, cfg.Retry)

	consumer, err := eventbus.NewKafkaConsumer(config.KafkaBrokers(), cfg.Kafka.GroupID)
	if err != nil {
		log.Fatal(err)
	}
	defer consumer.Close()

	topics := []string{cfg.Kafka.TopicHechos, cfg.Kafka.TopicPdIs, cfg.Kafka.TopicSolicitudes}
	if err := consumer.Subscribe(topics); err != nil {
		log.Fatal(err)
	}

	handler := newEventHandler(cfg.Kafka, svc)
	if err := consumer.Run(ctx, cfg.Kafka.ConsumerConcurrency, handler); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

func newEventHandler(kcfg config.KafkaConfig, svc *services.IndexacionService) eventbus.MessageHandler {
	return func(ctx context.Context, topic string, value []byte) error {
		switch topic {
		case kcfg.TopicHechos:
			evt, err := events.DeserializeEvent(events.HechoCreado, value)
			if err != nil {
				return err
			}
			return svc.IndexarHecho(ctx, evt.(*events.HechoCreadoEvent).Hecho)

		case kcfg.TopicPdIs:
			evt, err := events.DeserializeEvent(events.PdICreado, value)
			if err != nil {
				return err
			}
			// a deferred PdI is dropped here; the sweep picks it up later
			_, err = svc.IndexarPdI(ctx, evt.(*events.PdICreadoEvent).PdI)
			return err

		case kcfg.TopicSolicitudes:
			evt, err := events.DeserializeEvent(events.SolicitudAceptada, value)
			if err != nil {
				return err
			}
			e := evt.(*events.SolicitudAceptadaEvent)
			_, err = svc.CensurarHecho(ctx, e.HechoID, e.SolicitudID)
			return err

		default:
			return fmt.Errorf("tópico sin handler: %s", topic)
		}
	}
}
