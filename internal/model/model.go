package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChannelID identifies a single seismic channel by its four SEED code parts.
// The dotted form NET.STA.LOC.CHAN is the wire and snapshot representation;
// the location code may be empty ("GE.APE..BHZ").
type ChannelID struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

// ParseChannelID parses a dotted NET.STA.LOC.CHAN code.
func ParseChannelID(s string) (ChannelID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return ChannelID{}, fmt.Errorf("channel id %q: want 4 dot-separated fields, got %d", s, len(parts))
	}
	return ChannelID{
		Network:  parts[0],
		Station:  parts[1],
		Location: parts[2],
		Channel:  parts[3],
	}, nil
}

// String returns the dotted NET.STA.LOC.CHAN form.
func (c ChannelID) String() string {
	return c.Network + "." + c.Station + "." + c.Location + "." + c.Channel
}

// LocationKey returns the sensor location this channel is recorded at. All
// components of one instrument share it, so it is the grouping key for the
// channel-priority filter.
func (c ChannelID) LocationKey() LocationKey {
	return LocationKey{Network: c.Network, Station: c.Station, Location: c.Location}
}

// MarshalText renders the dotted form. Availability maps therefore marshal to
// the {"NET.STA.LOC.CHAN": {...}} JSON shape used by snapshot files.
func (c ChannelID) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the dotted form.
func (c *ChannelID) UnmarshalText(text []byte) error {
	id, err := ParseChannelID(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}

// LocationKey identifies one sensor location: the NET.STA.LOC prefix shared
// by the channels recorded there.
type LocationKey struct {
	Network  string
	Station  string
	Location string
}

// Coordinates is a station position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Availability maps channel ids to the coordinates of their station. It is
// the exchange type between fetchers, filters and the merger. Keys are unique
// by construction; merging is last write wins.
type Availability map[ChannelID]Coordinates

// Merge copies every entry of other into the map, overwriting existing keys.
func (a Availability) Merge(other Availability) {
	for id, coords := range other {
		a[id] = coords
	}
}

// BoundingBox is a geographic box with closed intervals on both axes.
// Min <= Max per axis is the caller's responsibility and is not enforced.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box. Points exactly on
// a boundary count as inside.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// GlobalBox spans every valid coordinate.
var GlobalBox = BoundingBox{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

// TimeWindow is a closed time interval. Start <= End is the caller's
// responsibility and is not enforced.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Covers reports whether w fully contains other. Boundary equality counts as
// covered; a window merely overlapping w does not.
func (w TimeWindow) Covers(other TimeWindow) bool {
	return !w.Start.After(other.Start) && !w.End.Before(other.End)
}

// RunID represents a UUIDv7 run identifier, passed in by orchestration or
// generated for ad-hoc runs. It keys snapshot uploads and log correlation.
type RunID string

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating run-id: %w", err)
	}
	return RunID(id.String()), nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}
