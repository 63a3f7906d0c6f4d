package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// ReplayConfig holds the environment-tunable knobs of the replay tool.
// Flags select behavior per run; the environment configures the
// deployment (paths, sizes, optional collaborators).
type ReplayConfig struct {
	EventLogDir    string `env:"EVENT_LOG_DIR" envDefault:"logs"`
	DepthLevels    int    `env:"DEPTH_LEVELS" envDefault:"5"`
	TapeCapacity   int    `env:"TAPE_CAPACITY" envDefault:"10000"`
	RingCapacity   int    `env:"RING_CAPACITY" envDefault:"65536"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	KafkaConfig    `envPrefix:"KAFKA_"`
	SnapshotConfig `envPrefix:"SNAPSHOT_"`
}

// KafkaConfig holds the configuration for the optional Kafka trade
// publisher. Publishing is off unless Enabled is set; Topic defaults to
// "trades".
type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Topic   string   `env:"TOPIC" envDefault:"trades"`
	Brokers []string `env:"BROKER" envDefault:""`
}

// SnapshotConfig holds the configuration for the optional Redis depth
// snapshot store.
type SnapshotConfig struct {
	Enabled   bool   `env:"ENABLED" envDefault:"false"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"lob:depth:"`
}
