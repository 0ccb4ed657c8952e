package server

import (
	"fmt"
	"net"
)

// MaxPortScan is the number of consecutive ports ListenPort probes, starting
// with Config.Port itself, before giving up.
const MaxPortScan = 100

// Config configures a GGP server instance: the port it listens on, its
// logging verbosity, and the RNG seed handed to every match's player.
type Config struct {
	// Port is the preferred TCP port to listen on. If it is already bound,
	// ListenPort scans forward up to MaxPortScan ports before failing.
	Port int

	// LogLevel is the minimum zapcore.Level to emit, as parsed by
	// cmd/ggpserver's --log flag.
	LogLevel string

	// Seed seeds every match's player RNG. cmd/ggpserver defaults this to
	// time-derived entropy unless --seed is given.
	Seed int64
}

// FillDefaults returns a copy of cfg with a zero Port replaced by the
// standard GGP player port.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg
	if newCfg.Port == 0 {
		newCfg.Port = 9147
	}
	if newCfg.LogLevel == "" {
		newCfg.LogLevel = "info"
	}
	return newCfg
}

// ListenPort finds the first free port at or after cfg.Port, binds it, and
// returns the open listener along with the port actually bound. The caller
// is responsible for closing the listener.
func ListenPort(cfg Config) (net.Listener, int, error) {
	var lastErr error
	for p := cfg.Port; p < cfg.Port+MaxPortScan; p++ {
		addr := fmt.Sprintf(":%d", p)
		l, err := net.Listen("tcp", addr)
		if err == nil {
			return l, p, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("no free port found in range %d-%d: %w", cfg.Port, cfg.Port+MaxPortScan-1, lastErr)
}
