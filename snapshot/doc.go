// Package snapshot persists RDM collections.
//
// The format is self-describing: a fixed header records the codec and
// compression names, so files written with one configuration load correctly
// under another. The payload is the codec-encoded collection, optionally
// compressed with lz4 or zstd.
package snapshot
