// Package web serves the browser registration form.
//
// A POST to /register runs one registration.Form against the backend with the
// browser's cookies. A redirect outcome becomes a 303 to the backend's
// hand-off URL; any other outcome re-renders the page with the status
// message.
package web
