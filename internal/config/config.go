package config

import (
	"github.com/dmccoystephenson/jpo-ppm/internal/filter"
	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
)

// Config is the fully resolved runtime configuration, after merging the
// config file, environment variables, and CLI flags.
type Config struct {
	ConsumerTopic string
	ProducerTopic string
	Partition     int32 // -1 means unassigned/any
	Brokers       []string
	GroupID       string
	Offset        string // "beginning" | "end" | "stored" | an integer string
	ExitOnEOF     bool
	DebugFacets   string

	ConsumerTimeoutMS int

	MapFile      string
	GeofenceSW   geo.Point
	GeofenceNE   geo.Point
	VelocityMin  float64
	VelocityMax  float64
	FilterMode   filter.Mode
	RedactFields []string

	LogLevel          string
	LogDir            string
	LogRemoveExisting bool

	// BrokerClientKeys collects every config-file key not handled above,
	// plus the SASL and bootstrap settings injected for KAFKA_TYPE=CONFLUENT.
	// The kafkabroker adapter does not read this map: only Brokers,
	// GroupID, Partition and Offset reach the broker client.
	BrokerClientKeys map[string]string
}

// Bounds returns the configured root geofence extent.
func (c *Config) Bounds() geo.Bounds {
	return geo.Bounds{SW: c.GeofenceSW, NE: c.GeofenceNE}
}
