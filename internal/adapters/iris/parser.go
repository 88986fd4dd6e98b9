package iris

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seisavail/internal/model"
)

// parseAvailability converts the XML listing into an availability map. Every
// station is re-checked against the box, and a channel is kept only when one
// of its extents covers the whole window on its own.
func parseAvailability(data []byte, box model.BoundingBox, window model.TimeWindow) (model.Availability, error) {
	var doc staMessage
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing availability listing: %w", err)
	}

	avail := make(model.Availability)
	for _, sta := range doc.Stations {
		network := strings.TrimSpace(sta.NetCode)
		stationCode := strings.TrimSpace(sta.StaCode)
		if network == "" || stationCode == "" {
			return nil, fmt.Errorf("station %q.%q: missing net_code or sta_code", network, stationCode)
		}

		lat, err := parseCoordinate(sta.Lat)
		if err != nil {
			return nil, fmt.Errorf("station %s.%s latitude: %w", network, stationCode, err)
		}
		lon, err := parseCoordinate(sta.Lon)
		if err != nil {
			return nil, fmt.Errorf("station %s.%s longitude: %w", network, stationCode, err)
		}
		if !box.Contains(lat, lon) {
			continue
		}
		coords := model.Coordinates{Latitude: lat, Longitude: lon}

		for _, ch := range sta.Channels {
			code := strings.TrimSpace(ch.ChanCode)
			if code == "" {
				return nil, fmt.Errorf("station %s.%s: channel missing chan_code", network, stationCode)
			}
			// An empty loc_code is a valid location, not a missing attribute.
			id := model.ChannelID{
				Network:  network,
				Station:  stationCode,
				Location: strings.TrimSpace(ch.LocCode),
				Channel:  code,
			}
			covered, err := extentsCover(ch, window)
			if err != nil {
				return nil, fmt.Errorf("channel %s: %w", id, err)
			}
			if covered {
				avail[id] = coords
			}
		}
	}
	return avail, nil
}

// extentsCover reports whether any single extent of the channel covers the
// whole window. Two extents that only cover it together do not count; a gap
// between them may hide missing data.
func extentsCover(ch channel, window model.TimeWindow) (bool, error) {
	for _, span := range ch.TimeSpans {
		for _, ext := range span.Extents {
			reported, err := parseExtent(ext)
			if err != nil {
				return false, err
			}
			if reported.Covers(window) {
				return true, nil
			}
		}
	}
	return false, nil
}

func parseExtent(e extent) (model.TimeWindow, error) {
	start, err := parseTime(e.Start)
	if err != nil {
		return model.TimeWindow{}, fmt.Errorf("extent start: %w", err)
	}
	end, err := parseTime(e.End)
	if err != nil {
		return model.TimeWindow{}, fmt.Errorf("extent end: %w", err)
	}
	return model.TimeWindow{Start: start, End: end}, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", s)
	}
	return v, nil
}

// parseTime accepts RFC 3339 timestamps as well as the zone-less
// YYYY-MM-DDTHH:MM:SS form the service historically emits, which is read
// as UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return t, nil
}
