package testing

import (
	"testing"

	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/types"
)

// NewTestLogger creates a new logger instance that writes to the testing.TB logger.
// This is useful for seeing log output during test runs.
func NewTestLogger(t testing.TB) types.Logger {
	return logging.NewTest(t)
}
