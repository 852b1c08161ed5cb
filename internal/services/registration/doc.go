// Package registration implements the registration form controller and the
// HTTP client it drives.
//
// A Form holds one user's email, password, in-flight flag and status message.
// Submit posts the credentials to the backend registration endpoint and reacts
// to the reply: a redirect_url hands the user off through a Navigator, any
// other 2xx body is shown as an unexpected response, and every failure becomes
// an "Error: ..." status. At most one request is in flight per Form.
//
// The web, CLI and MCP surfaces all host Forms; none of them re-implement the
// response handling.
package registration
