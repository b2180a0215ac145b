package managers

import (
	"os"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.Disable()
	os.Exit(m.Run())
}
