package models

import "time"

// Application describes the running service instance. It is the payload of
// the /endpoints/info route.
type Application struct {
	// Name is the configured application name (APP_NAME).
	Name string `json:"name"`

	// Version is the configured application version (APP_VERSION). When it is
	// not configured the linker-injected build version is reported instead.
	Version string `json:"version"`

	// InstanceID uniquely identifies this process. It is generated once at
	// startup.
	InstanceID string `json:"instance_id"`

	// StartedAt is the UTC time the service was constructed.
	StartedAt time.Time `json:"started_at"`

	// Build holds linker-injected build metadata.
	Build BuildInfo `json:"build"`

	// Features reports which optional backends are enabled.
	Features Features `json:"features"`
}

// BuildInfo is the JSON form of [AppBuildInfo].
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// Features lists the optional backends and whether each one is enabled.
type Features struct {
	Database bool `json:"database"`
	Redis    bool `json:"redis"`
}
