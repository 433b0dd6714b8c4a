// Package errors provides the structured error type shared by the pipeline,
// the model-backed stages and their collaborators.
//
// Every failure that aborts a run is an *AppError carrying a machine-readable
// code. The original cause is always kept in the chain, so errors.Is and
// errors.As on a run error still reach the error a source, stage or sink
// returned.
package errors
