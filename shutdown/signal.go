package shutdown

import (
	"os"
	"sync"
)

// SignalCounter tracks repeated interrupt signals and triggers a forced
// exit once a threshold is reached: first signal = graceful, second =
// force. The signal that crossed the threshold is handed to the force
// callback so the process can exit with the matching 128+signal code.
//
// Usage:
//
//	counter := NewSignalCounter(2, func(sig os.Signal) {
//	    os.Exit(core.ExitCodeSIGINT)
//	})
//
//	signal.Notify(sigChan, os.Interrupt)
//	go func() {
//	    for sig := range sigChan {
//	        if counter.Increment(sig) == 1 {
//	            // trigger graceful shutdown
//	        }
//	        // force callback fires automatically at the threshold
//	    }
//	}()
type SignalCounter struct {
	mu         sync.Mutex
	count      int
	forceAfter int
	onForce    func(os.Signal)
}

// NewSignalCounter creates a counter that invokes onForce when
// Increment has been called forceAfter times. A forceAfter of zero or
// less disables forcing.
func NewSignalCounter(forceAfter int, onForce func(os.Signal)) *SignalCounter {
	return &SignalCounter{forceAfter: forceAfter, onForce: onForce}
}

// Increment records one signal and returns the new count. The force
// callback runs inline on the call that reaches the threshold, exactly
// once.
func (c *SignalCounter) Increment(sig os.Signal) int {
	c.mu.Lock()
	c.count++
	count := c.count
	fire := c.forceAfter > 0 && count == c.forceAfter
	c.mu.Unlock()

	if fire && c.onForce != nil {
		c.onForce(sig)
	}
	return count
}

// Count returns the number of signals recorded so far.
func (c *SignalCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
