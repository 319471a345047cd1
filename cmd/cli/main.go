package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/proofkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/proofkeeper/internal/client/cli"
	"github.com/dmitrijs2005/proofkeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	cmd, err := cli.ParseCommand(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cmd.Empty() {
		err = app.Run(ctx)
	} else {
		err = app.Exec(ctx, cmd)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
