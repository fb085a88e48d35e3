package app

import (
	"errors"

	"github.com/vk/bootstrapgo/handlers/s3fetch"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Identity   string   // application name; the resource is looked up as meta/<identity>
	Variant    string   // optional configuration variant
	Roots      []string // ambient search roots, usually executable dir and working dir
	BundlePath string   // explicit bundle path or remote bundle locator
	LogProfile string   // logging profile selector
	Debug      bool     // verbose logging until a profile takes over

	// S3 configures the optional object-store fetch handler. An empty
	// endpoint leaves the handler unregistered.
	S3 s3fetch.Config

	// Args is the argument vector handed to the entry point verbatim.
	Args []string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Identity == "" {
		return nil, errors.New("Identity is a required configuration field and cannot be empty")
	}
	if len(cfg.Roots) == 0 {
		return nil, errors.New("Roots must name at least one search directory")
	}

	return &cfg, nil
}
