// Package version reports the build of the running service
package version

// Service is the name the API reports about itself
const Service = "twinlytics-api"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service" example:"twinlytics-api"`
	Version string `json:"version" example:"v0.3.1"`
	Commit  string `json:"commit"  example:"9f2c1ab"`
	Date    string `json:"date"    example:"2025-09-02"`
}

// Info returns the build information
// set at link time: -ldflags "-X twinlytics/internal/core/version.version=v0.3.1"
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
