// Package logger provides structured logging for contentgen using zerolog.
//
// Loggers are component-scoped: the engine, each stage and each collaborator
// derive a child with WithComponent and attach per-call fields as a map.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("pipeline")
//	log.Info("batch emitted", map[string]interface{}{logger.FieldBatch: 3})
package logger
