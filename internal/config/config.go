// Package config loads service settings from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config gathers every tunable of the simulated backend. The injector
// defaults are part of the client contract: retry/rollback expectations are
// calibrated against a [200ms,1200ms) delay and a 10% write failure rate.
type Config struct {
	Service  svcConfig
	Mirror   mirrorConfig
	Injector InjectorConfig
	Seed     seedConfig
}

type svcConfig struct {
	Address  string `envconfig:"TALENTFLOW_ADDRESS" default:":8080"`
	LogLevel string `envconfig:"TALENTFLOW_LOG_LEVEL" default:"info"`
}

type mirrorConfig struct {
	DSN string `envconfig:"TALENTFLOW_MIRROR_DSN" default:"talentflow.db"`
}

// InjectorConfig holds the latency and fault constants applied to every
// routed request.
type InjectorConfig struct {
	MinLatency time.Duration `envconfig:"TALENTFLOW_MIN_LATENCY" default:"200ms"`
	MaxLatency time.Duration `envconfig:"TALENTFLOW_MAX_LATENCY" default:"1200ms"`
	FaultRate  float64       `envconfig:"TALENTFLOW_FAULT_RATE" default:"0.10"`
}

type seedConfig struct {
	Jobs        int `envconfig:"TALENTFLOW_SEED_JOBS" default:"25"`
	Candidates  int `envconfig:"TALENTFLOW_SEED_CANDIDATES" default:"1000"`
	Assessments int `envconfig:"TALENTFLOW_SEED_ASSESSMENTS" default:"3"`
}

// New processes the environment into a Config.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
