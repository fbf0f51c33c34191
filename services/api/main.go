package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/campus"
	"github.com/02loveslollipop/campus-pulse/services/api/chat"
	"github.com/02loveslollipop/campus-pulse/services/api/config"
	"github.com/02loveslollipop/campus-pulse/services/api/db"
	httpserver "github.com/02loveslollipop/campus-pulse/services/api/http"
	"github.com/02loveslollipop/campus-pulse/services/api/logger"
	"github.com/02loveslollipop/campus-pulse/services/api/metrics"
	"github.com/02loveslollipop/campus-pulse/services/api/publish"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	simsignal "github.com/02loveslollipop/campus-pulse/services/api/signal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg, err := loadRegistry(ctx, cfg)
	if err != nil {
		lg.Fatalf("registry error: %v", err)
	}
	lg.WithField("source", cfg.RegistrySource).Info("campus registry loaded")

	m := metrics.New()
	sink := openSinks(cfg, lg, m)
	defer sink.Close()

	env := analysis.Env{
		Registry: reg,
		Policy:   cfg.FallbackPolicy,
		Clock:    simsignal.SystemClock,
		Log:      lg,
	}
	svc := campus.NewService(
		campus.Simulated(env, simsignal.NewSeeded(cfg.SimSeed), cfg.WaterDetector),
		campus.WithMetrics(m),
		campus.WithSink(sink),
		campus.WithLogger(lg),
		campus.WithWorkers(cfg.OverviewWorkers),
	)

	var responder chat.Responder = chat.TemplateResponder{}
	if cfg.LLMEnabled() {
		llm, err := chat.NewLLMResponder(ctx, chat.LLMConfig{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			RPM:     cfg.LLMRPM,
		}, responder, lg)
		if err != nil {
			lg.WithError(err).Warn("chat model unavailable, using template replies")
		} else {
			responder = llm
			lg.WithFields(logrus.Fields{"model": cfg.LLMModel, "rpm": cfg.LLMRPM}).Info("chat model configured")
		}
	}

	srv := httpserver.New(cfg, httpserver.Deps{
		Campus:    svc,
		Assistant: chat.NewAssistant(svc, reg, responder, m, lg),
		Registry:  reg,
		Metrics:   m,
		Log:       lg,
	})
	lg.Infof("REST API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		lg.Fatalf("server error: %v", err)
	}
}

func loadRegistry(ctx context.Context, cfg config.Config) (*registry.Registry, error) {
	switch cfg.RegistrySource {
	case config.RegistryFile:
		return registry.LoadFile(cfg.RegistryFile)
	case config.RegistryPostgres:
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadRegistry(ctx)
	default:
		return registry.Default(), nil
	}
}

// openSinks connects the configured report sinks. A sink that cannot be
// reached is skipped so the API still serves reports.
func openSinks(cfg config.Config, lg logrus.FieldLogger, m *metrics.Metrics) publish.Sink {
	var sinks []publish.Sink
	if len(cfg.KafkaBrokers) > 0 {
		k, err := publish.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaReportTopic)
		if err != nil {
			lg.WithError(err).Warn("kafka sink disabled")
		} else {
			sinks = append(sinks, k)
			lg.WithField("topic", cfg.KafkaReportTopic).Info("kafka report sink enabled")
		}
	}
	if cfg.MQTTBroker != "" {
		mq, err := publish.DialMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			lg.WithError(err).Warn("mqtt sink disabled")
		} else {
			sinks = append(sinks, mq)
			lg.WithField("prefix", cfg.MQTTTopicPrefix).Info("mqtt signage sink enabled")
		}
	}
	if len(sinks) == 0 {
		return publish.Nop{}
	}
	return publish.NewMulti(m.Published, sinks...)
}
