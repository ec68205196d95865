package submitmain

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/golang/glog"
	"github.com/robfig/cron"

	"github.com/tapexyz/tape-publisher/pkg/reconciler"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

const (
	checkRunSecs = 5
)

func checkCron(cr *cron.Cron) {
	entries := cr.Entries()
	for _, entry := range entries {
		log.Infof("Reconcile run times: prev: %v, next: %v\n", entry.Prev, entry.Next)
	}
}

// RunReconcile runs a single reconcile pass over the pending queue
func RunReconcile(ctx context.Context, rec *reconciler.Reconciler) {
	stats, err := rec.Reconcile(ctx)
	if err != nil {
		log.Errorf("Error reconciling queue: err: %v", err)
		return
	}
	log.Infof("Done reconciling queue: checked %v, indexed %v, failed %v, pending %v: %v",
		stats.Checked, stats.Indexed, stats.Failed, stats.Pending, runtime.NumGoroutine())
}

// SetupKillNotify closes the persisters and services on SIGINT/SIGTERM
func SetupKillNotify(persisters *InitializedPersisters, services *Services) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Infof("Shutting down")
		services.Close()
		persisters.Close()
		log.Flush()
		os.Exit(1)
	}()
}

// QueueCronMain contains the logic to reconcile the pending queue using a
// cronjob
func QueueCronMain(config *utils.PublisherConfig, persisters *InitializedPersisters,
	services *Services) {
	rec := reconciler.NewReconciler(&reconciler.NewReconcilerParams{
		Checker: services.Lens,
		Queue:   persisters.Queue,
		Cron:    persisters.Cron,
		Cache:   services.Cache,
	})

	cr := cron.New()
	err := cr.AddFunc(config.CronConfig, func() { RunReconcile(context.Background(), rec) })
	if err != nil {
		log.Errorf("Error starting: err: %v", err)
		os.Exit(1)
	}
	cr.Start()

	// Blocks here while the cron process runs
	for range time.Tick(checkRunSecs * time.Second) {
		checkCron(cr)
	}
}
