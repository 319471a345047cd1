package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/proofkeeper/internal/flagx"
	"github.com/dmitrijs2005/proofkeeper/internal/timex"
)

// JsonConfig is the on-disk client configuration. Absent keys keep defaults.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabaseFile        *string         `json:"database_file"`
	TxMortality         *timex.Duration `json:"tx_mortality"`
	LogFile             *string         `json:"log_file"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabaseFile != nil {
		cfg.DatabaseFile = *jc.DatabaseFile
	}
	if jc.TxMortality != nil {
		cfg.TxMortality = jc.TxMortality.Duration
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	return nil
}
