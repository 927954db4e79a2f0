package registry

import (
	"os"
	"testing"

	"github.com/gitter-badger/zoc/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}
