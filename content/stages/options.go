package stages

import (
	"time"

	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/modelstage"
	"github.com/kbukum/contentgen/observability"
)

// Clock returns the current time. Stages stamp created and updated times with it.
type Clock func() time.Time

// Options configure a content stage.
type Options struct {
	Params  modelstage.Params
	Clock   Clock
	Logger  *logger.Logger
	Metrics *observability.PipelineMetrics
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
