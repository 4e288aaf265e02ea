package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/scaraplate/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/scaraplate/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/scaraplate/internal/version.Date={{.Date}}
)

// Info returns the build information as printed by `scaraplate version`.
func Info(app string) string {
	return app + " version " + Version + "\n" +
		"  commit: " + Commit + "\n" +
		"  built:  " + Date + "\n"
}
