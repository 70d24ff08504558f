package core

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/bookhive/bookhive-go/internal/assets"
	"github.com/bookhive/bookhive-go/internal/config"
	"github.com/bookhive/bookhive-go/internal/db"
	"github.com/bookhive/bookhive-go/internal/jobs"
	"github.com/bookhive/bookhive-go/internal/websocket"
)

// App holds the core components of the application that are shared between
// the server, background jobs, and tests. It satisfies jobs.JobContext.
type App struct {
	config     *config.Config
	db         *sql.DB
	wsHub      *websocket.Hub
	jobManager *jobs.JobManager
	version    string
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, running migrations,
// and starting the WebSocket hub.
func New(version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		// We can't proceed without a valid database schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	app := NewApp(cfg, database, hub, version)
	log.Println("Core application setup complete.")
	return app, nil
}

// NewApp assembles an App from pre-built components. Tests use this to
// inject an in-memory database and their own hub.
func NewApp(cfg *config.Config, database *sql.DB, hub *websocket.Hub, version string) *App {
	app := &App{
		config:  cfg,
		db:      database,
		wsHub:   hub,
		version: version,
	}
	app.jobManager = jobs.NewManager(app)
	return app
}

func (a *App) Config() *config.Config       { return a.config }
func (a *App) DB() *sql.DB                  { return a.db }
func (a *App) WsHub() *websocket.Hub        { return a.wsHub }
func (a *App) JobManager() *jobs.JobManager { return a.jobManager }
func (a *App) Version() string              { return a.version }

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
