// Package app assembles the contentgen pipeline from configuration and
// runs it as a finite task with signal-aware cancellation.
//
// The assembled run is
//
//	hot list source -> topic explainer -> packager (script writer) -> sink
//
// where the model backend is an HTTP dialect adapter or the offline mock,
// optionally behind a Redis reply cache, and the sink is object storage,
// Kafka or both.
package app
