package availability

import (
	"context"
	"log/slog"

	"seisavail/internal/model"
)

// Request bundles the spatial and temporal scope of an availability lookup.
type Request struct {
	Box    model.BoundingBox
	Window model.TimeWindow
}

// Fetcher retrieves channel availability from one remote source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, req Request) (model.Availability, error)
}

// Outcome records how one source fared during a lookup. Err is nil on
// success; Channels counts the entries the source contributed before merging.
type Outcome struct {
	Source   string
	Channels int
	Err      error
}

// Service queries a fixed list of sources and merges their results.
type Service struct {
	fetchers []Fetcher
	log      *slog.Logger
}

// NewService creates a service querying the given sources in order. Later
// sources overwrite earlier ones on channel-id collision, so callers list
// the most authoritative source last. A nil logger falls back to
// slog.Default().
func NewService(fetchers []Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetchers: fetchers, log: logger}
}

// Availability queries every source sequentially, one completing before the
// next starts, and merges their maps. A failing source is logged and recorded
// in its outcome; the remaining sources are still queried and the method
// itself never fails. Both "no source had data" and "every source failed"
// yield an empty map; the outcomes tell them apart.
func (s *Service) Availability(ctx context.Context, req Request) (model.Availability, []Outcome) {
	merged := make(model.Availability)
	outcomes := make([]Outcome, 0, len(s.fetchers))

	for _, f := range s.fetchers {
		result, err := f.Fetch(ctx, req)
		if err != nil {
			s.log.WarnContext(ctx, "could not get availability", "source", f.Name(), "error", err)
			outcomes = append(outcomes, Outcome{Source: f.Name(), Err: err})
			continue
		}

		merged.Merge(result)
		s.log.DebugContext(ctx, "availability fetched", "source", f.Name(), "channels", len(result))
		outcomes = append(outcomes, Outcome{Source: f.Name(), Channels: len(result)})
	}

	return merged, outcomes
}
