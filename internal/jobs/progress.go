package jobs

import "encoding/json"

// ProgressUpdate is the message long-running jobs broadcast over the
// WebSocket hub so the UI can show live progress.
type ProgressUpdate struct {
	JobID     string `json:"job_id"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
}

// SendProgressUpdate marshals and broadcasts a progress update.
func SendProgressUpdate(ctx JobContext, update ProgressUpdate) {
	msg, err := json.Marshal(update)
	if err != nil {
		return
	}
	ctx.WsHub().Broadcast(msg)
}
