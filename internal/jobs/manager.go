package jobs

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bookhive/bookhive-go/internal/config"
	"github.com/bookhive/bookhive-go/internal/websocket"
)

// JobContext is an interface that provides the necessary dependencies for a
// job to run. The core.App struct implements this interface.
type JobContext interface {
	DB() *sql.DB
	Config() *config.Config
	WsHub() *websocket.Hub
	JobManager() *JobManager
}

type jobTask func(ctx JobContext)

type JobStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // "idle", "running", "success", "failed"
	Message   string    `json:"message"`
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`
}

type JobManager struct {
	mu      sync.Mutex
	jobs    map[string]jobTask
	status  map[string]*JobStatus
	running bool
	appCtx  JobContext
}

func NewManager(appCtx JobContext) *JobManager {
	return &JobManager{
		jobs:   make(map[string]jobTask),
		status: make(map[string]*JobStatus),
		appCtx: appCtx,
	}
}

func (jm *JobManager) Register(id, name string, task jobTask) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobs[id] = task
	jm.status[id] = &JobStatus{ID: id, Name: name, Status: "idle"}
}

// RunJob starts the named job in a goroutine. Only one job may run at a time;
// a second call while a job is in flight returns an error instead of queuing.
func (jm *JobManager) RunJob(id string, ctx JobContext) error {
	jm.mu.Lock()
	if jm.running {
		jm.mu.Unlock()
		return fmt.Errorf("a job is already running")
	}

	task, ok := jm.jobs[id]
	if !ok {
		jm.mu.Unlock()
		return fmt.Errorf("job '%s' not found", id)
	}

	jm.running = true
	status := jm.status[id]
	status.Status = "running"
	status.Message = ""
	status.StartTime = time.Now()
	status.EndTime = time.Time{}
	jm.mu.Unlock()

	go func() {
		defer func() {
			jm.mu.Lock()
			defer jm.mu.Unlock()
			jm.running = false
			status.EndTime = time.Now()
			if r := recover(); r != nil {
				status.Status = "failed"
				status.Message = fmt.Sprintf("job panicked: %v", r)
			} else if status.Status == "running" {
				status.Status = "success"
			}
		}()
		task(ctx)
	}()
	return nil
}

func (jm *JobManager) GetStatus() []*JobStatus {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	var statuses []*JobStatus
	for _, s := range jm.status {
		statuses = append(statuses, s)
	}
	return statuses
}
