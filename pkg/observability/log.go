package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements OutlineHooks and PlacementHooks by writing debug
// records to a charm logger.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnOutlineCacheHit(lifeline string) {
	h.Logger.Debug("outline cache hit", "lifeline", lifeline)
}

func (h *LogHooks) OnOutlineCacheMiss(lifeline string) {
	h.Logger.Debug("outline cache miss", "lifeline", lifeline)
}

func (h *LogHooks) OnOutlineComputed(lifeline string, bars, clusters int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("outline failed", "lifeline", lifeline, "err", err)
		return
	}
	h.Logger.Debug("outline computed", "lifeline", lifeline, "bars", bars, "clusters", clusters, "took", d)
}

func (h *LogHooks) OnResolve(lifeline string, adjusted bool) {
	h.Logger.Debug("placement resolved", "lifeline", lifeline, "adjusted", adjusted)
}

func (h *LogHooks) OnRelocate(lifeline, bar string, passes, changed int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("relocation failed", "lifeline", lifeline, "bar", bar, "passes", passes, "err", err)
		return
	}
	h.Logger.Debug("relocation settled", "lifeline", lifeline, "bar", bar, "passes", passes, "changed", changed, "took", d)
}
