package core

import (
	"strconv"

	"pcrchat/config"
	"pcrchat/internal/client"
	"pcrchat/internal/connector"
	"pcrchat/internal/errors"
	"pcrchat/internal/metrics"
	"pcrchat/util"
)

// Build constructs the appropriate Mode from the given configuration.
// Host and port overrides are validated and written to the endpoint
// store here, so the first connect already sees them.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	store := config.NewStore(cfg.StorePath, logger.Named("store"))
	if err := applyOverrides(cfg, store, logger); err != nil {
		return nil, err
	}

	m := metrics.New()
	conn := connector.New(cfg.Timeout, store, logger.Named("connector"), m)
	conn.Attempts = cfg.ConnectAttempts

	comps := Components{
		Alias:     cfg.Alias,
		Store:     store,
		Connector: conn,
		Pacer:     buildPacer(cfg),
		Logger:    logger,
		Metrics:   m,
	}

	if cfg.Plain {
		return &LineMode{Components: comps}, nil
	}
	return &ChatMode{Components: comps}, nil
}

// ── shared helpers ───────────────────────────────────────────────────

func applyOverrides(cfg *config.Config, store *config.Store, logger *util.Logger) error {
	if cfg.Host != "" {
		if !connector.ValidateIP(cfg.Host) {
			return &errors.ConfigError{
				Field:   "host",
				Value:   cfg.Host,
				Message: "Please enter a valid ipv4 address",
				Hint:    "use a dotted quad such as 192.168.1.10",
			}
		}
		if _, err := store.SetHost(cfg.Host); err != nil {
			return err
		}
		logger.Verbose("ipv4 address has been changed to %s", cfg.Host)
	}

	if cfg.Port >= 0 {
		if !connector.ValidatePort(strconv.Itoa(cfg.Port)) {
			return &errors.ConfigError{
				Field:   "port",
				Value:   cfg.Port,
				Message: "Max port number is 65535",
			}
		}
		if _, err := store.SetPort(cfg.Port); err != nil {
			return err
		}
		logger.Verbose("port number has been changed to %d", cfg.Port)
	}
	return nil
}

// buildPacer selects how chat lines are revealed.
func buildPacer(cfg *config.Config) client.Pacer {
	if !cfg.Typewriter {
		return client.Bulk{}
	}
	return client.Typewriter{Delay: cfg.TypeDelay}
}
