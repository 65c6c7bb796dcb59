// Package formload exposes module-level metadata.
package formload

// Version is the formload module version.
const Version = "0.1.0"
