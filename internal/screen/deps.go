package screen

import (
	"time"

	"github.com/abhisek/examdrill/internal/analysis"
	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/store"
)

// Deps carries the collaborators screens need. Results and Analyzer are
// optional; screens degrade when they are nil.
type Deps struct {
	Catalog  *catalog.Catalog
	Settings quiz.Settings
	Results  store.ResultRepo
	Analyzer *analysis.Service

	// Now stamps completed results. Nil means time.Now.
	Now func() time.Time
}

// Clock returns the current time from Now, or time.Now.
func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
