package exitcode

// Exit codes for the seisavail CLI.
// Schedulers can use these to decide retry strategy.
const (
	// Success - lookup completed, possibly with degraded sources
	Success = 0

	// ConfigError - missing or invalid configuration, bad flag values
	// Don't retry: fix the invocation first
	ConfigError = 1

	// SourceError - every availability source failed
	// Retry later: the services may be down
	SourceError = 2

	// StorageError - failed to upload the snapshot to MinIO/S3
	// Retry with backoff
	StorageError = 3
)
