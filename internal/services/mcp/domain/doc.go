// Package domain defines the MCP tools exposed by drivelink and the handlers
// that run them against the registration backend.
package domain
