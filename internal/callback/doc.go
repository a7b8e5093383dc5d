// Package callback receives the authorization redirect on a loopback address.
//
// A Server listens on 127.0.0.1, serves a single /callback request, renders
// a small HTML page for the browser and hands the query parameters back to
// the caller through WaitForCallback. OpenBrowser launches the platform's
// default browser at the authorization URL.
package callback
