package iris

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"seisavail/internal/availability"
	"seisavail/internal/model"
)

const (
	timeLayout     = "2006-01-02T15:04:05"
	defaultTimeout = 30 * time.Second
)

// Client queries an IRIS-style availability web service. The service filters
// by box and window on its side, but nothing it reports is trusted blindly:
// station coordinates are re-checked against the box and channel extents
// against the window before a channel is accepted.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates an availability client for the given base URL. A
// non-positive timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New().SetTimeout(timeout),
	}
}

// Name identifies the source in merge outcomes and logs.
func (c *Client) Name() string { return "iris" }

// Fetch requests the XML availability listing for the box and window and
// keeps the channels whose reported extent fully covers the window.
func (c *Client) Fetch(ctx context.Context, req availability.Request) (model.Availability, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"minlat":    formatCoordinate(req.Box.MinLat),
			"maxlat":    formatCoordinate(req.Box.MaxLat),
			"minlon":    formatCoordinate(req.Box.MinLon),
			"maxlon":    formatCoordinate(req.Box.MaxLon),
			"starttime": req.Window.Start.UTC().Format(timeLayout),
			"endtime":   req.Window.End.UTC().Format(timeLayout),
			"output":    "xml",
		}).
		Get(c.baseURL + "/availability/query")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &apiError{StatusCode: resp.StatusCode(), Message: "availability request failed"}
	}

	avail, err := parseAvailability(resp.Body(), req.Box, req.Window)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "parsed availability listing", "channels", len(avail))
	return avail, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
