// Package main implements the entry point for ppm, a privacy protection
// module that filters Basic Safety Messages against a geofence and speed
// policy before they leave the system.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmccoystephenson/jpo-ppm/internal/broker/kafkabroker"
	"github.com/dmccoystephenson/jpo-ppm/internal/config"
	"github.com/dmccoystephenson/jpo-ppm/internal/errs"
	"github.com/dmccoystephenson/jpo-ppm/internal/health"
	"github.com/dmccoystephenson/jpo-ppm/internal/logging"
	"github.com/dmccoystephenson/jpo-ppm/internal/metrics"
	"github.com/dmccoystephenson/jpo-ppm/internal/shapes"
	"github.com/dmccoystephenson/jpo-ppm/internal/stream"

	"github.com/dmccoystephenson/jpo-ppm/internal/broker"
)

const appName = "ppm"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, buf[:n])
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cli, err := parseFlags(args)
	if err != nil {
		return err
	}
	if cli.ShowHelp {
		return nil
	}
	if cli.Debug && cli.LogLevel == "" {
		cli.LogLevel = "debug"
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	geofence, err := shapes.BuildGeofence(cfg.MapFile, cfg.Bounds())
	if err != nil {
		return errs.New(errs.KindMap, err)
	}

	if cli.ConfigCheck {
		fmt.Printf("%s: configuration and geofence map (%d entities) are valid\n", appName, geofence.Len())
		return nil
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		level = logging.LevelInfo
	}
	logger, err := logging.Files(cfg.LogDir, cli.InfoLogName, cli.ErrLogName, level, cfg.LogRemoveExisting)
	if err != nil {
		return fmt.Errorf("%s: %w", appName, err)
	}
	defer logger.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	monitor := health.NewMonitor()

	if cli.MetricsAddr != "" {
		srv := metrics.NewServer(cli.MetricsAddr, reg, func() any { return monitor.Status() })
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	newConsumer := func() (broker.Consumer, error) {
		return kafkabroker.NewConsumer(consumerConfig(cfg)), nil
	}
	newProducer := func() (broker.Producer, error) {
		return kafkabroker.NewProducer(producerConfig(cfg)), nil
	}

	runner := stream.New(cfg, geofence, cfg.FilterMode, newConsumer, newProducer, logger, m, monitor)
	runner.SetHighWaterMarkDetector(kafkabroker.AtHighWaterMark)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		runner.Shutdown()
	}()

	logger.Info("starting", "consumer_topic", cfg.ConsumerTopic, "producer_topic", cfg.ProducerTopic)
	return runner.Run(ctx)
}

func loadConfig(cli *CLIConfig) (*config.Config, error) {
	var fileValues map[string]string
	if cli.ConfigPath != "" {
		values, err := config.ParseFile(cli.ConfigPath)
		if err != nil {
			return nil, errs.New(errs.KindConfig, err)
		}
		fileValues = values
	}

	env := config.Env{
		KafkaType:       os.Getenv("KAFKA_TYPE"),
		ConfluentKey:    os.Getenv("CONFLUENT_KEY"),
		ConfluentSecret: os.Getenv("CONFLUENT_SECRET"),
		DockerHostIP:    os.Getenv("DOCKER_HOST_IP"),
	}

	overrides := config.CLIOverrides{
		ConsumerTopic:        cli.ConsumerTopic,
		ProducerTopic:        cli.ProducerTopic,
		Partition:            int32(cli.Partition),
		PartitionSet:         cli.PartitionSet,
		GroupID:              cli.GroupID,
		Brokers:              cli.Brokers,
		Offset:               cli.Offset,
		DebugFacets:          cli.DebugFacets,
		ExitOnEOF:            cli.ExitOnEOF,
		ExitOnEOFSet:         cli.ExitOnEOFSet,
		MapFile:              cli.MapFile,
		LogLevel:             cli.LogLevel,
		LogDir:               cli.LogDir,
		LogRemoveExisting:    cli.LogRemove,
		LogRemoveExistingSet: cli.LogRemoveSet,
	}

	return config.Resolve(fileValues, env, overrides)
}

func consumerConfig(cfg *config.Config) kafkabroker.Config {
	return kafkabroker.Config{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Partition:   cfg.Partition,
		StartOffset: startOffset(cfg.Offset),
		MinBytes:    1,
		MaxBytes:    10 << 20,
	}
}

func producerConfig(cfg *config.Config) kafkabroker.Config {
	return kafkabroker.Config{
		Brokers: cfg.Brokers,
	}
}
