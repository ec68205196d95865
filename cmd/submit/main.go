package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"

	"github.com/tapexyz/tape-publisher/pkg/submitmain"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

func main() {
	profileID := flag.String("profile", "", "Id of the channel commenting")
	publicationID := flag.String("publication", "", "Id of the publication to comment on")
	text := flag.String("text", "", "Comment or tip message")
	tipAmount := flag.String("tip-amount", "", "If set, tips this MATIC amount to the publication owner")
	prompt := flag.Bool("prompt", false, "Confirm every signature request on stdin")

	config := &utils.PublisherConfig{}
	flag.Usage = func() {
		flag.PrintDefaults()
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
	if *profileID == "" || *publicationID == "" {
		log.Errorf("-profile and -publication are required")
		os.Exit(2)
	}

	ctx := context.Background()
	persisters, err := submitmain.InitPersisters(config)
	if err != nil {
		log.Errorf("Error initializing persister: err: %v", err)
		os.Exit(2)
	}
	defer persisters.Close()

	services, err := submitmain.InitServices(ctx, config)
	if err != nil {
		log.Errorf("Error initializing services: err: %v", err)
		os.Exit(2)
	}
	defer services.Close()

	submitter, err := submitmain.InitSubmitter(config, persisters, services, *prompt, os.Stdin, os.Stdout)
	if err != nil {
		log.Errorf("Error initializing submitter: err: %v", err)
		os.Exit(2)
	}

	res, err := submitmain.RunSubmit(ctx, services.Lens, services.Cache, submitter, &submitmain.SubmitParams{
		ProfileID:     *profileID,
		PublicationID: *publicationID,
		Text:          *text,
		TipAmount:     *tipAmount,
	})
	if err != nil {
		log.Errorf("Error submitting: err: %v", err)
		services.Close()
		persisters.Close()
		log.Flush()
		os.Exit(1)
	}
	fmt.Printf("strategy: %v\nstates: %v\ncontent id: %v\ncontent: %v\ntxn id: %v\ntxn hash: %v\npublication: %v\n",
		res.Strategy, res.States(), res.ContentID, res.ContentURI, res.TxnID, res.TxnHash, res.PublicationID)
	if comment, ok := submitmain.CachedComment(services.Cache, res); ok {
		fmt.Printf("indexed comment: %v by %v\n", comment.ID(), comment.ProfileHandle())
	}
	log.Flush()
}
