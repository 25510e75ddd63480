package config

import (
	"strconv"
	"strings"

	"github.com/dmccoystephenson/jpo-ppm/internal/errs"
	"github.com/dmccoystephenson/jpo-ppm/internal/filter"
)

// Env is the managed-broker environment variables the resolver
// consults. A zero Env means "no managed-broker mode".
type Env struct {
	KafkaType       string
	ConfluentKey    string
	ConfluentSecret string
	DockerHostIP    string
}

// CLIOverrides carries the subset of settings the CLI can override. A
// zero value for a field means "not supplied on the command line"; the
// *Set fields disambiguate zero-valued flags (partition 0, exit-on-eof
// false) from unset ones.
type CLIOverrides struct {
	ConsumerTopic string
	ProducerTopic string

	Partition    int32
	PartitionSet bool

	GroupID     string
	Brokers     string
	Offset      string
	DebugFacets string

	ExitOnEOF    bool
	ExitOnEOFSet bool

	MapFile string

	LogLevel string
	LogDir   string

	LogRemoveExisting    bool
	LogRemoveExistingSet bool
}

// Resolve merges fileValues, env, and cli into a Config, with cli taking
// precedence over env, and env taking precedence over fileValues.
func Resolve(fileValues map[string]string, env Env, cli CLIOverrides) (*Config, error) {
	cfg := &Config{
		Partition:         -1,
		ConsumerTimeoutMS: 500,
		VelocityMin:       filter.DefaultSpeedMin,
		VelocityMax:       filter.DefaultSpeedMax,
		FilterMode:        filter.Inclusive,
		BrokerClientKeys:  make(map[string]string),
	}

	if err := applyFileValues(cfg, fileValues); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}
	applyCLI(cfg, cli)

	if cfg.ConsumerTopic == "" {
		return nil, errs.Newf(errs.KindConfig, "privacy.topic.consumer is required")
	}
	if cfg.ProducerTopic == "" {
		return nil, errs.Newf(errs.KindConfig, "privacy.topic.producer is required")
	}
	if cfg.MapFile == "" {
		return nil, errs.Newf(errs.KindConfig, "privacy.filter.geofence.mapfile is required")
	}
	if !cfg.Bounds().Valid() {
		return nil, errs.Newf(errs.KindConfig, "privacy.filter.geofence bounds are invalid or unset")
	}

	return cfg, nil
}

func applyFileValues(cfg *Config, values map[string]string) error {
	for key, value := range values {
		switch key {
		case "privacy.topic.consumer":
			cfg.ConsumerTopic = value
		case "privacy.topic.producer":
			cfg.ProducerTopic = value
		case "privacy.kafka.partition":
			n, err := strconv.Atoi(value)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.kafka.partition: %v", err)
			}
			cfg.Partition = int32(n)
		case "privacy.consumer.timeout.ms":
			n, err := strconv.Atoi(value)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.consumer.timeout.ms: %v", err)
			}
			cfg.ConsumerTimeoutMS = n
		case "privacy.filter.geofence.mapfile":
			cfg.MapFile = value
		case "privacy.filter.geofence.sw.lat":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.geofence.sw.lat: %v", err)
			}
			cfg.GeofenceSW.Lat = f
		case "privacy.filter.geofence.sw.lon":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.geofence.sw.lon: %v", err)
			}
			cfg.GeofenceSW.Lon = f
		case "privacy.filter.geofence.ne.lat":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.geofence.ne.lat: %v", err)
			}
			cfg.GeofenceNE.Lat = f
		case "privacy.filter.geofence.ne.lon":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.geofence.ne.lon: %v", err)
			}
			cfg.GeofenceNE.Lon = f
		case "privacy.filter.velocity.min":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.velocity.min: %v", err)
			}
			cfg.VelocityMin = f
		case "privacy.filter.velocity.max":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errs.Newf(errs.KindConfig, "privacy.filter.velocity.max: %v", err)
			}
			cfg.VelocityMax = f
		case "privacy.filter.mode":
			mode, ok := filter.ParseMode(value)
			if !ok {
				return errs.Newf(errs.KindConfig, "privacy.filter.mode: unrecognized value %q", value)
			}
			cfg.FilterMode = mode
		case "privacy.filter.redact.fields":
			cfg.RedactFields = splitCSV(value)
		default:
			cfg.BrokerClientKeys[key] = value
		}
	}
	return nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyEnv injects Confluent Cloud connection settings when KAFKA_TYPE
// is set to CONFLUENT. A partially configured managed-broker mode is a
// fatal configuration error rather than a silent fallback to an empty
// credential.
func applyEnv(cfg *Config, env Env) error {
	if env.KafkaType != "CONFLUENT" {
		return nil
	}
	if env.ConfluentKey == "" || env.ConfluentSecret == "" || env.DockerHostIP == "" {
		return errs.Newf(errs.KindConfig,
			"KAFKA_TYPE=CONFLUENT requires CONFLUENT_KEY, CONFLUENT_SECRET, and DOCKER_HOST_IP to all be set")
	}

	cfg.BrokerClientKeys["security.protocol"] = "SASL_SSL"
	cfg.BrokerClientKeys["sasl.mechanism"] = "PLAIN"
	cfg.BrokerClientKeys["sasl.username"] = env.ConfluentKey
	cfg.BrokerClientKeys["sasl.password"] = env.ConfluentSecret
	cfg.BrokerClientKeys["bootstrap.servers"] = env.DockerHostIP
	if len(cfg.Brokers) == 0 {
		cfg.Brokers = []string{env.DockerHostIP}
	}
	return nil
}

func applyCLI(cfg *Config, cli CLIOverrides) {
	if cli.ConsumerTopic != "" {
		cfg.ConsumerTopic = cli.ConsumerTopic
	}
	if cli.ProducerTopic != "" {
		cfg.ProducerTopic = cli.ProducerTopic
	}
	if cli.PartitionSet {
		cfg.Partition = cli.Partition
	}
	if cli.GroupID != "" {
		cfg.GroupID = cli.GroupID
	}
	if cli.Brokers != "" {
		cfg.Brokers = splitCSV(cli.Brokers)
	}
	if cli.Offset != "" {
		cfg.Offset = cli.Offset
	}
	if cli.ExitOnEOFSet {
		cfg.ExitOnEOF = cli.ExitOnEOF
	}
	if cli.DebugFacets != "" {
		cfg.DebugFacets = cli.DebugFacets
	}
	if cli.MapFile != "" {
		cfg.MapFile = cli.MapFile
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.LogDir != "" {
		cfg.LogDir = cli.LogDir
	}
	if cli.LogRemoveExistingSet {
		cfg.LogRemoveExisting = cli.LogRemoveExisting
	}
}
