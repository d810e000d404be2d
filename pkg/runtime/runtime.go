package runtime

var (
	// Version is set at build time through -ldflags
	Version = "0.0.0-dev"
	// GitCommit is set at build time through -ldflags
	GitCommit = ""
	// Timestamp is set at build time through -ldflags (unix seconds)
	Timestamp = ""
)
