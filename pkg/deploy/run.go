package deploy

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Run is one lifecycle run: the hooks fired for a single deployment.
type Run struct {
	ID      string
	Context *Context
	Started time.Time
}

func NewRun(c *Context) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Context: c,
		Started: time.Now(),
	}
}

// Since reports the run age for log lines, e.g. "3 seconds ago".
func (r *Run) Since() string {
	return humanize.Time(r.Started)
}
