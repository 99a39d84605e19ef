package version

// Build metadata injected through -ldflags. Defaults identify a local
// development build so the version endpoint never returns empty fields.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	Dirty   = "false"
)

// String renders the build identity in one line for startup logs.
func String() string {
	s := Version + " (" + Commit + ", " + Date + ")"
	if Dirty == "true" {
		s += " dirty"
	}
	return s
}
