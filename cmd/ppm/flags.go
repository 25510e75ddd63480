package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds every flag the processor accepts, plus the
// disambiguator fields needed to tell "flag not passed" from "flag
// passed as its zero value".
type CLIConfig struct {
	ConfigPath  string
	ConfigCheck bool

	ConsumerTopic string
	ProducerTopic string

	Partition    int
	PartitionSet bool

	GroupID string
	Brokers string
	Offset  string

	ExitOnEOF    bool
	ExitOnEOFSet bool

	Debug       bool
	DebugFacets string

	MapFile string

	LogLevel     string
	LogDir       string
	LogRemove    bool
	LogRemoveSet bool

	InfoLogName string
	ErrLogName  string
	MetricsAddr string
	ShowHelp    bool
}

func parseFlags(args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet("ppm", flag.ContinueOnError)

	var partitionStr string
	var exitOnEOFStr string

	fs.StringVar(&cfg.ConfigPath, "config", getEnv("PPM_CONFIG", "ppm.conf"), "path to the key=value config file")
	fs.StringVar(&cfg.ConfigPath, "c", getEnv("PPM_CONFIG", "ppm.conf"), "shorthand for -config")
	fs.BoolVar(&cfg.ConfigCheck, "config-check", false, "validate configuration and the geofence map, then exit")
	fs.BoolVar(&cfg.ConfigCheck, "C", false, "shorthand for -config-check")

	fs.StringVar(&cfg.ConsumerTopic, "unfiltered-topic", "", "topic to consume unfiltered BSMs from")
	fs.StringVar(&cfg.ConsumerTopic, "u", "", "shorthand for -unfiltered-topic")
	fs.StringVar(&cfg.ProducerTopic, "filtered-topic", "", "topic to produce filtered BSMs to")
	fs.StringVar(&cfg.ProducerTopic, "f", "", "shorthand for -filtered-topic")

	fs.StringVar(&partitionStr, "partition", "", "partition to consume from and produce to, -1 for broker-assigned")
	fs.StringVar(&partitionStr, "p", "", "shorthand for -partition")
	fs.StringVar(&cfg.GroupID, "group", "", "consumer group id")
	fs.StringVar(&cfg.GroupID, "g", "", "shorthand for -group")
	fs.StringVar(&cfg.Brokers, "broker", "", "comma-separated broker addresses")
	fs.StringVar(&cfg.Brokers, "b", "", "shorthand for -broker")
	fs.StringVar(&cfg.Offset, "offset", "", "starting offset: beginning, end, stored, or an integer")
	fs.StringVar(&cfg.Offset, "o", "", "shorthand for -offset")
	fs.StringVar(&exitOnEOFStr, "exit", "", "exit once every partition reaches end-of-stream (true/false)")
	fs.StringVar(&exitOnEOFStr, "x", "", "shorthand for -exit")

	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug-facet logging")
	fs.BoolVar(&cfg.Debug, "d", false, "shorthand for -debug")
	fs.StringVar(&cfg.DebugFacets, "debug-facets", "", "comma-separated debug facets to enable")

	fs.StringVar(&cfg.MapFile, "mapfile", "", "geofence map CSV file")
	fs.StringVar(&cfg.MapFile, "m", "", "shorthand for -mapfile")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "trace, debug, info, warning, error, critical, or off")
	fs.StringVar(&cfg.LogLevel, "v", "", "shorthand for -log-level")
	fs.StringVar(&cfg.LogDir, "log-dir", "", "directory to write log files into")
	fs.StringVar(&cfg.LogDir, "D", "", "shorthand for -log-dir")
	fs.BoolVar(&cfg.LogRemove, "log-rm", false, "remove pre-existing log files at startup")
	fs.BoolVar(&cfg.LogRemove, "R", false, "shorthand for -log-rm")
	fs.StringVar(&cfg.InfoLogName, "ilog", "ppm.info.log", "info log file name")
	fs.StringVar(&cfg.InfoLogName, "i", "ppm.info.log", "shorthand for -ilog")
	fs.StringVar(&cfg.ErrLogName, "elog", "ppm.error.log", "error log file name")
	fs.StringVar(&cfg.ErrLogName, "e", "ppm.error.log", "shorthand for -elog")

	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "address to serve /metrics and /healthz on, empty to disable")

	fs.BoolVar(&cfg.ShowHelp, "help", false, "show this help message")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "shorthand for -help")

	fs.Usage = func() { printHelp(fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowHelp {
		fs.Usage()
	}

	if partitionStr != "" {
		n, err := strconv.Atoi(partitionStr)
		if err != nil {
			return nil, fmt.Errorf("-partition: %w", err)
		}
		cfg.Partition = n
		cfg.PartitionSet = true
	}
	if exitOnEOFStr != "" {
		b, err := strconv.ParseBool(exitOnEOFStr)
		if err != nil {
			return nil, fmt.Errorf("-exit: %w", err)
		}
		cfg.ExitOnEOF = b
		cfg.ExitOnEOFSet = true
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log-rm" || f.Name == "R" {
			cfg.LogRemoveSet = true
		}
	})

	return cfg, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `ppm - Privacy Protection Module

Usage: ppm [options]

Reads Basic Safety Messages from one topic, drops (or redacts) the ones
a geofence and speed policy say should not leave the system, and
republishes the rest.

Options:
`)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  ppm -c ppm.conf
  ppm -c ppm.conf -C                  # validate config and geofence map, then exit
  ppm -c ppm.conf -u bsm.in -f bsm.out -v debug
`)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
