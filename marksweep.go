// ABOUTME: Root marksweep package providing version information and package documentation
// ABOUTME: The collector itself lives in the gc package

// Package marksweep is a deterministic, on-demand mark-and-sweep collector
// for embedders that track their own objects. The gc package holds the
// collector; the graph, heapdump and history packages are built around it.
package marksweep

// Version is the semantic version of the marksweep module
const Version = "0.2.0-dev"
