package quotelai

// Version information for quotelai.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/quotelai.GitCommit=abc1234"
const (
	// Name is the application name.
	Name = "quotelai"

	// Description is a short description of the application.
	Description = "Streaming AI translation of new-tab quotes"

	// Version is the semantic version of the application.
	Version = "0.3.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/quotelai"
)

// Build information, set via ldflags during release builds.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version string with the short commit when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent sent with API requests.
func UserAgent() string {
	return Name + "/" + Version
}
