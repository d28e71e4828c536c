package routes

import "fmt"

// apiVersion is the version segment baked into every route path.
const apiVersion = "v0"

// Version returns the current API version string used in routing (e.g., "v0").
func Version() string {
	return apiVersion
}

// Base returns the versioned API base path (e.g., "/api/v0").
func Base() string {
	return fmt.Sprintf("/api/%s", Version())
}

// Health returns the versioned health path (e.g., "/api/v0/health").
func Health() string {
	return Base() + "/health"
}

// Clusters returns the cluster registry base path (e.g., "/api/v0/clusters").
func Clusters() string {
	return Base() + "/clusters"
}

// Items returns the items base path (e.g., "/api/v0/items").
func Items() string {
	return Base() + "/items"
}

// Admin returns the administrative base path (e.g., "/api/v0/admin").
func Admin() string {
	return Base() + "/admin"
}
