// Package converters provides implementations of the BlockConverter interface.
// Each converter knows how to turn a source format into content blocks
// that a publisher can submit to its destination.
package converters
