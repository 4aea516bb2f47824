// Package input defines the typed events the editor controller consumes
// Producers (the terminal front end, tests) translate raw device events into
// these values; coordinates are already in surface space.
package input
