package malign

import "fmt"

// Set at build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Version returns the version string of malign.
func Version() string {
	return buildVersion(version, commit, date)
}

func buildVersion(version, commit, date string) string {
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}
