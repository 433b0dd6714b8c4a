// Package output holds the pipeline sinks for finished content packages.
//
// StorageSink writes each package as a Markdown article plus a video
// script JSON file into an object store, grouped by day:
//
//	2024-10-01/20241001_article_t-1001.md
//	2024-10-01/20241001_article_t-1001.video.json
//
// KafkaSink publishes each package as one JSON message keyed by its hot
// topic id. Fanout emits to several sinks in order.
package output
