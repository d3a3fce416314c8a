// ABOUTME: Package documentation for the mark-and-sweep collector
// ABOUTME: Describes the object, root, pin and collection contracts

// Package gc implements a deterministic, on-demand mark-and-sweep collector
// for objects an embedder chooses to track.
//
// Every tracked type embeds Header and may override Trace to declare the
// other tracked objects it references. The Collector owns the lifetime of
// every tracked object: an object survives a call to Collect only if it is
// reachable through Trace edges from a root or a pinned object. Everything
// else is unregistered and released in the same cycle.
//
// A Collector is not safe for concurrent use. Wrap it in a Shared when more
// than one goroutine needs access, and use a Sweeper for periodic collection.
package gc
