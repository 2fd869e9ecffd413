// Package http is the localhost façade the UI layer talks to. It exposes
// the client core (login orchestration, cached report snapshot, the live
// report stream) over a small JSON API bound to the loopback interface.
package http
