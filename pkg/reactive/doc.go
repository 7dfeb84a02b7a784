// Package reactive provides the observable cell the store keeps its current
// value in: a typed holder plus a registered observer list that is notified
// synchronously, in registration order, before each write returns.
//
// The cell is deliberately framework-free. Observers run on the writing
// goroutine and must not write back into the cell from the callback.
package reactive
