package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"seisavail/internal/adapters/arclink"
	"seisavail/internal/adapters/iris"
	"seisavail/internal/availability"
	"seisavail/internal/config"
	"seisavail/internal/exitcode"
	"seisavail/internal/model"
	"seisavail/internal/storage"
)

func main() {
	// Configure the global logger. Logs go to stderr; stdout carries the
	// result JSON.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// Parse CLI flags
	minLat := flag.Float64("min-lat", model.GlobalBox.MinLat, "Minimum latitude of the search box")
	maxLat := flag.Float64("max-lat", model.GlobalBox.MaxLat, "Maximum latitude of the search box")
	minLon := flag.Float64("min-lon", model.GlobalBox.MinLon, "Minimum longitude of the search box")
	maxLon := flag.Float64("max-lon", model.GlobalBox.MaxLon, "Maximum longitude of the search box")
	startStr := flag.String("start", "", "Window start, RFC3339 or YYYY-MM-DD (default: 24h before end)")
	endStr := flag.String("end", "", "Window end, RFC3339 or YYYY-MM-DD (default: now)")
	filter := flag.Bool("filter", false, "Keep only the preferred channel set per sensor location")
	snapshot := flag.Bool("snapshot", false, "Upload the result JSON to MinIO")
	runIDStr := flag.String("run-id", "", "Run identifier (UUIDv7; generated when omitted)")
	pretty := flag.Bool("pretty", false, "Indent the JSON output")
	flag.Parse()

	// Parse and validate flags
	window, err := resolveWindow(*startStr, *endStr)
	if err != nil {
		slog.Error("invalid time window", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}
	box := model.BoundingBox{MinLat: *minLat, MaxLat: *maxLat, MinLon: *minLon, MaxLon: *maxLon}
	if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
		slog.Error("invalid bounding box", "minLat", box.MinLat, "maxLat", box.MaxLat, "minLon", box.MinLon, "maxLon", box.MaxLon)
		fmt.Fprintf(os.Stderr, "Usage: min-lat/min-lon must not exceed max-lat/max-lon\n")
		os.Exit(exitcode.ConfigError)
	}

	runID := model.RunID(*runIDStr)
	if *runIDStr != "" {
		if err := runID.Validate(); err != nil {
			slog.Error("invalid run-id", "error", err)
			fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
			os.Exit(exitcode.ConfigError)
		}
	} else if *snapshot {
		runID, err = model.NewRunID()
		if err != nil {
			slog.Error("failed to generate run-id", "error", err)
			os.Exit(exitcode.ConfigError)
		}
	}

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize the MinIO client up front so a bad snapshot setup fails
	// before any source is queried.
	var sink *storage.MinIOClient
	if *snapshot {
		if err := cfg.ValidateMinIO(); err != nil {
			slog.Error("incomplete minio configuration", "error", err)
			os.Exit(exitcode.ConfigError)
		}
		sink, err = storage.NewMinIOClient(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			slog.Error("failed to initialize minio client", "error", err)
			os.Exit(exitcode.ConfigError)
		}
	}

	svc := availability.NewService([]availability.Fetcher{
		iris.NewClient(cfg.IRISBaseURL, cfg.Timeout),
		arclink.NewClient(cfg.ArcLinkBaseURL, cfg.Timeout),
	}, slog.Default())

	slog.Info("looking up channel availability",
		"runID", runID.String(),
		"start", window.Start,
		"end", window.End)

	result, outcomes := svc.Availability(ctx, availability.Request{Box: box, Window: window})
	if allFailed(outcomes) {
		slog.Error("all availability sources failed")
		os.Exit(exitcode.SourceError)
	}

	if *filter {
		priorities := cfg.Priorities
		if priorities == nil {
			priorities = availability.DefaultPriorities()
		}
		before := len(result)
		result = availability.FilterChannelPriority(result, priorities)
		slog.Info("applied channel priority filter", "before", before, "after", len(result))
	}

	out, err := encode(result, *pretty)
	if err != nil {
		slog.Error("failed to encode result", "error", err)
		os.Exit(exitcode.SourceError)
	}
	fmt.Println(string(out))

	if *snapshot {
		key := storage.ObjectKey{
			Date:  time.Now().UTC().Format("2006-01-02"),
			RunID: runID.String(),
		}
		if err := sink.PutSnapshot(ctx, key, out); err != nil {
			slog.Error("failed to upload snapshot", "key", key.Key(), "error", err)
			os.Exit(exitcode.StorageError)
		}
		slog.Info("snapshot uploaded", "key", key.Key())
	}

	slog.Info("lookup complete", "channels", len(result))
}

// resolveWindow turns the start/end flag values into a concrete window. An
// empty end means now; an empty start means 24 hours before end.
func resolveWindow(startStr, endStr string) (model.TimeWindow, error) {
	end := time.Now().UTC()
	if endStr != "" {
		t, err := parseTimeArg(endStr)
		if err != nil {
			return model.TimeWindow{}, fmt.Errorf("end: %w", err)
		}
		end = t
	}

	start := end.Add(-24 * time.Hour)
	if startStr != "" {
		t, err := parseTimeArg(startStr)
		if err != nil {
			return model.TimeWindow{}, fmt.Errorf("start: %w", err)
		}
		start = t
	}

	if start.After(end) {
		return model.TimeWindow{}, fmt.Errorf("start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return model.TimeWindow{Start: start, End: end}, nil
}

func parseTimeArg(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339 or YYYY-MM-DD)", s)
}

func allFailed(outcomes []availability.Outcome) bool {
	for _, o := range outcomes {
		if o.Err == nil {
			return false
		}
	}
	return len(outcomes) > 0
}

func encode(result model.Availability, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
