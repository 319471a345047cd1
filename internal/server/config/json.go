package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/proofkeeper/internal/flagx"
	"github.com/dmitrijs2005/proofkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the node configuration. Durations accept
// "6s"-style strings or integer nanoseconds. Absent keys keep their defaults.
type JsonConfig struct {
	EndpointAddrGRPC    *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN         *string         `json:"database_dsn"`
	BlockInterval       *timex.Duration `json:"block_interval"`
	EvidenceURLValidity *timex.Duration `json:"evidence_url_validity"`
	S3RootUser          *string         `json:"s3_root_user"`
	S3RootPassword      *string         `json:"s3_root_password"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.BlockInterval != nil {
		config.BlockInterval = c.BlockInterval.Duration
	}
	if c.EvidenceURLValidity != nil {
		config.EvidenceURLValidity = c.EvidenceURLValidity.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
