// Package netcheck reports whether the host currently has a usable network.
//
// Monitor looks at the local interfaces: the host counts as online when at
// least one interface is up, is not loopback and holds a unicast address.
// Nothing is dialed.
//
// Observe emits the current value right away and then one value per change,
// polling at the configured interval. Each call owns its goroutine and ticker;
// cancelling the context stops both and closes the channel.
//
// Static is a fixed Checker for tests and for connectivity_check = false.
package netcheck
