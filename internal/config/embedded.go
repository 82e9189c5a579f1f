package config

// Embedded API keys injected at build time via ldflags.
// These serve as defaults and can be overridden by environment
// variables or config file.
//
// Build with:
//   go build -ldflags "-X 'github.com/cinescope/cinescope/internal/config.EmbeddedTMDBKey=xxx' \
//                      -X 'github.com/cinescope/cinescope/internal/config.EmbeddedOMDBKey=yyy'"
var (
	EmbeddedTMDBKey string
	EmbeddedOMDBKey string
)

// Version is set at build time.
var Version = "dev"
