package testsupport

import (
	"testing"

	"subweave/internal/artifacts"
	"subweave/internal/config"
)

// MustOpenStore opens an artifacts.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *artifacts.Store {
	t.Helper()

	store, err := artifacts.Open(cfg)
	if err != nil {
		t.Fatalf("artifacts.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
