package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/flagx"
)

// parseFlags overlays short flags onto cfg:
//
//	-a string   ledger node address
//	-i int      online check interval, seconds
//	-f string   local database file
//	-m int      transaction mortality, seconds
//	-l string   log file
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "local database file")
	mortality := fs.Int("m", int(cfg.TxMortality.Seconds()), "transaction mortality (in seconds)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")

	if err := flagx.ParseFiltered(fs, args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "m":
			cfg.TxMortality = time.Duration(*mortality) * time.Second
		}
	})
	return nil
}
