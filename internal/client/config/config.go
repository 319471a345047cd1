// Package config loads settings for the proof-of-existence terminal client.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the ledger node.
//   - OnlineCheckInterval: how often the node is pinged for the status badge.
//   - DatabaseFile: sqlite file holding the sealed account key and history.
//   - TxMortality: how long a signed extrinsic stays valid.
//   - LogFile: JSON log destination; the terminal belongs to the UI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabaseFile        string
	TxMortality         time.Duration
	LogFile             string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabaseFile = "poe.db"
	c.TxMortality = 64 * time.Second
	c.LogFile = "poe.log"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.TxMortality <= 0 {
		return fmt.Errorf("tx mortality must be positive, got %s", c.TxMortality)
	}
	return nil
}
