// Package storage is the object store behind the file sink.
//
// Backends register a factory under their provider name and are selected
// by Config.Provider:
//
//   - storage/local: a directory on the local filesystem
//   - storage/s3: Amazon S3 or an S3-compatible service such as MinIO
//
// Import the backend package for its side effect before calling New:
//
//	import _ "github.com/kbukum/contentgen/storage/local"
//
//	store, err := storage.New(storage.Config{Provider: "local", BasePath: "./out"}, log)
package storage
