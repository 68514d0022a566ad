package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/agrawald/kafka-connect-zeebe/internal/engine"
	"github.com/agrawald/kafka-connect-zeebe/internal/logging"
	"github.com/agrawald/kafka-connect-zeebe/internal/version"

	// sink drivers register themselves
	_ "github.com/agrawald/kafka-connect-zeebe/sink/kafka"
	_ "github.com/agrawald/kafka-connect-zeebe/sink/stdout"
)

func main() {
	connectorYml := flag.String("config", "connector.yml", "connector spec file")
	metricsPort := flag.Int("metrics-port", 9100, "prometheus exposition port (0 disables)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version())
		return
	}

	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(ctx, engine.Config{
		ConnectorYml: *connectorYml,
		MetricsPort:  *metricsPort,
	})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	logging.L().Info("connector started", "version", version.Version())

	if err := e.Run(ctx); err != nil {
		log.Fatalf("engine: %v", err)
	}
}
