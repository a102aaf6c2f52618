package version

import (
	"fmt"
	"net/http"
)

// This variables are injected at build time.

// Version hosts the version of the app.
var Version = "development"

// Commit is the commit hash of the build
var Commit string

// BuildDate is the date it was built
var BuildDate string

// GoVersion is the go version that was used to compile this
var GoVersion string

// UserAgent returns the string identifying this build in outgoing HTTP
// requests.
func UserAgent() string {
	return fmt.Sprintf("asymcrypt/%s", Version)
}

// SetUserAgent sets the User-Agent header on the supplied request.
func SetUserAgent(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent())
}
