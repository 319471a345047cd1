package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/flagx"
)

// parseFlags overlays flags from args onto config.
//
//	-a string   gRPC bind address
//	-d string   PostgreSQL DSN
//	-t int      block interval, seconds
//	-v int      evidence URL validity, minutes
//	-u/-p       S3 user and password
//	-b/-g/-e    S3 bucket, region and base endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	blockInterval := fs.Int("t", int(config.BlockInterval.Seconds()), "block interval (in seconds)")
	urlValidity := fs.Int("v", int(config.EvidenceURLValidity.Minutes()), "evidence URL validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 evidence bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := flagx.ParseFiltered(fs, args); err != nil {
		return err
	}

	// only explicit flags; a JSON "500ms" must survive the round trip
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.BlockInterval = time.Duration(*blockInterval) * time.Second
		case "v":
			config.EvidenceURLValidity = time.Duration(*urlValidity) * time.Minute
		}
	})
	return nil
}
