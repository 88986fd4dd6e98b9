package arclink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seisavail/internal/availability"
	"seisavail/internal/model"
)

const (
	timeLayout     = "2006-01-02T15:04:05"
	defaultTimeout = 30 * time.Second
)

// Client queries an ArcLink-style station inventory catalog. The catalog is
// authoritative for station coordinates and access restrictions but knows
// nothing about waveform coverage, so every channel of a retained station is
// reported for the requested window.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL. A non-positive
// timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the source in merge outcomes and logs.
func (c *Client) Name() string { return "arclink" }

// Fetch downloads the inventory listing for the window and reduces it to the
// channels whose station is unrestricted and inside the box.
func (c *Client) Fetch(ctx context.Context, req availability.Request) (model.Availability, error) {
	inventory, err := c.networks(ctx, req.Window)
	if err != nil {
		return nil, err
	}

	avail := reduce(inventory, req.Box)
	slog.DebugContext(ctx, "reduced inventory listing",
		"entries", len(inventory),
		"channels", len(avail))
	return avail, nil
}

func (c *Client) networks(ctx context.Context, window model.TimeWindow) (map[string]inventoryEntry, error) {
	params := url.Values{}
	params.Set("starttime", window.Start.UTC().Format(timeLayout))
	params.Set("endtime", window.End.UTC().Format(timeLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/networks?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating inventory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apiError{StatusCode: resp.StatusCode, Message: "inventory request failed"}
	}

	var inventory map[string]inventoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&inventory); err != nil {
		return nil, fmt.Errorf("decoding inventory: %w", err)
	}
	return inventory, nil
}

// reduce turns the flat inventory listing into an availability map. Stations
// are classified first so that channel entries, which carry no coordinates of
// their own, can inherit from their station regardless of listing order.
func reduce(inventory map[string]inventoryEntry, box model.BoundingBox) model.Availability {
	stations := make(map[string]model.Coordinates)
	var channels []model.ChannelID

	for key, entry := range inventory {
		parts := strings.Split(key, ".")
		switch len(parts) {
		case 1:
			// Network entries carry no location.
			continue
		case 4:
			channels = append(channels, model.ChannelID{
				Network:  parts[0],
				Station:  parts[1],
				Location: parts[2],
				Channel:  parts[3],
			})
			continue
		}
		if entry.Restricted {
			continue
		}
		if !box.Contains(entry.Latitude, entry.Longitude) {
			continue
		}
		stations[parts[0]+"."+parts[1]] = model.Coordinates{
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
		}
	}

	avail := make(model.Availability)
	for _, id := range channels {
		coords, ok := stations[id.Network+"."+id.Station]
		if !ok {
			continue
		}
		avail[id] = coords
	}
	return avail
}
