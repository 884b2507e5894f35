package interfaces

type AppMetadataProvider interface {
	// CurrentVersion returns the version under the given info key, or "" when missing.
	CurrentVersion(selector string) string
	CurrentAppName() string
	// LocalizedString prefers the host string table when useMainBundle is set.
	LocalizedString(key, appName string, useMainBundle bool) string
}
