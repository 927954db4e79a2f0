package state

import (
	"os"
	"testing"

	"github.com/gitter-badger/zoc/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
