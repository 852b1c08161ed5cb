// Package service hosts the drivelink MCP server over stdio or streamable
// HTTP.
package service
