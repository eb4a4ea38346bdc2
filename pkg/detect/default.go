package detect

import (
	"context"
	"sync"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"
)

type Config struct {
	// LogLevel is the level of the engine's logger.
	// Every probe evaluation is logged on debug level.
	LogLevel logging.Level `env:"CONCEPTKIT_LOG_LEVEL" default:"info" enum:"debug;info;warn;error;fatal;"`
}

func LoadConfig() (Config, error) {
	var c Config
	return c, env.Load(&c)
}

var defaultEngine struct {
	once   sync.Once
	engine *Engine
}

// Default returns the program wide engine.
// It is configured from the environment on first use.
func Default() *Engine {
	defaultEngine.once.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			defaultLogger.Warn(context.Background(), "invalid detection engine configuration, using defaults", logging.ErrField(err))
			cfg = Config{}
		}
		defaultEngine.engine = NewEngine(cfg)
	})
	return defaultEngine.engine
}

func Detect(op Op, args ...Type) (Result, error) { return Default().Detect(op, args...) }

func Exists(op Op, args ...Type) (bool, error) { return Default().Exists(op, args...) }

func DetectedT(op Op, args ...Type) (Type, error) { return Default().DetectedT(op, args...) }

func DetectedOr(fallback Type, op Op, args ...Type) (Type, error) {
	return Default().DetectedOr(fallback, op, args...)
}

func ConvertsTo(to Type, op Op, args ...Type) (bool, error) {
	return Default().ConvertsTo(to, op, args...)
}

func CastsTo(to Type, op Op, args ...Type) (bool, error) { return Default().CastsTo(to, op, args...) }

func IdenticalTo(exact Type, op Op, args ...Type) (bool, error) {
	return Default().IdenticalTo(exact, op, args...)
}
