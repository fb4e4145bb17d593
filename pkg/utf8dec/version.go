package utf8dec

// Version information for the utf8dec module.
const (
	// Version is the current version of the utf8dec module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
