// Command goals-refresh tells running dashboards that the goal source changed.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"lifegoals/internal/amqp"
	"lifegoals/internal/cli"
	applog "lifegoals/internal/log"
)

func main() {
	reason := flag.String("reason", "", "why the goal source changed")
	source := flag.String("source", "goals-refresh", "name recorded as the message source")
	flag.Parse()

	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required to publish refresh notifications")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := amqp.NewRefreshMessage(*source, *reason)
	if err := client.PublishRefresh(ctx, msg); err != nil {
		logger.Error("Failed to publish refresh notification", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Published goals refresh", "source", msg.Source, "reason", msg.Reason)
}
