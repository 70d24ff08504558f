// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/bookhive/bookhive-go/internal/api"
	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/catalog/mockbooks"
	"github.com/bookhive/bookhive-go/internal/config"
	"github.com/bookhive/bookhive-go/internal/core"
	"github.com/bookhive/bookhive-go/internal/websocket"
)

// SetupTestApp initializes a core.App backed by an in-memory database with
// the mock catalog provider registered.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	cfg.Catalog.Provider = "mockbooks"
	cfg.Catalog.BatchSize = 3

	hub := websocket.NewHub()
	go hub.Run()
	app := core.NewApp(cfg, db, hub, "test")

	t.Cleanup(func() {
		catalog.UnregisterAll()
	})

	// Register providers for the test environment
	catalog.Register(mockbooks.New())
	return app
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	server := api.NewServer(app)
	return server, app.DB()
}
