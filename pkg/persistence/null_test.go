package persistence_test

import (
	"testing"

	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/persistence"
)

func testPendingTxPersister(p model.PendingTxPersister) {
}

func testSigNoncePersister(p model.SigNoncePersister) {
}

func testCronPersister(p model.CronPersister) {
}

func TestNullInterface(t *testing.T) {
	p := &persistence.NullPersister{}

	testPendingTxPersister(p)
	testSigNoncePersister(p)
	testCronPersister(p)
}

func TestMemoryInterface(t *testing.T) {
	p := persistence.NewMemoryPersister()

	testPendingTxPersister(p)
	testSigNoncePersister(p)
	testCronPersister(p)
	testCronPersister(persistence.NewCronPersister())
}
