// Package errs defines the error types returned to API clients.
//
// Handlers and services return *HTTPError values (or plain errors that
// the global error handler classifies), so every failure reaches the
// client in the same JSON shape:
//
//	{"code":"NOT_FOUND","message":"Item not found","status":404,"override":true,"errors":null,"action":null}
package errs
