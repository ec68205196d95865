package main

import (
	"context"
	"flag"
	"os"

	log "github.com/golang/glog"

	"github.com/tapexyz/tape-publisher/pkg/submitmain"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

func main() {
	config := &utils.PublisherConfig{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		log.Errorf("Invalid publisher config: err: %v\n", err)
		os.Exit(2)
	}

	persisters, err := submitmain.InitPersisters(config)
	if err != nil {
		log.Errorf("Error initializing persister: err: %v", err)
		os.Exit(2)
	}

	services, err := submitmain.InitServices(context.Background(), config)
	if err != nil {
		log.Errorf("Error initializing services: err: %v", err)
		os.Exit(2)
	}

	submitmain.SetupKillNotify(persisters, services)
	submitmain.QueueCronMain(config, persisters, services)
}
