// Package workers runs the client's background work: the periodic report
// reconciliation loop and detached best-effort tasks.
//
// A Worker starts its own goroutines from Run and blocks only long enough
// to launch them; the Workers aggregate starts every registered worker in
// order.
package workers

// Worker is a background unit of work.
type Worker interface {
	// Run starts the worker. Implementations spawn their goroutines and
	// return; shutdown goes through Stop.
	Run()

	// Stop cancels the worker and blocks until its goroutines exit.
	Stop()
}
