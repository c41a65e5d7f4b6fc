package repository_test

import (
	"os"
	"testing"

	"crm-backend/internal/testutils"
)

// TestMain tears down the shared Postgres container once the package's tests
// finish.
func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}
