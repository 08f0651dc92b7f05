// Package dataset provides the measurement container consumed by RDM
// calculation: a dense observations-by-channels matrix annotated with
// descriptor dictionaries at the dataset, observation and channel level.
package dataset
