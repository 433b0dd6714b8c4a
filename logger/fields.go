package logger

import "time"

// Field keys used across the pipeline, stages and collaborators.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldOperation = "operation"

	FieldPipeline   = "pipeline"
	FieldSource     = "source"
	FieldSink       = "sink"
	FieldStage      = "stage"
	FieldStageIndex = "stage_index"
	FieldBatch      = "batch"
	FieldBatchSize  = "batch_size"
	FieldItemIndex  = "item_index"
	FieldItems      = "items"

	FieldRequestID = "request_id"
	FieldVariantID = "prompt_variant_id"
	FieldModel     = "model"
	FieldDialect   = "dialect"
	FieldCacheHit  = "cache_hit"

	FieldPath  = "path"
	FieldTopic = "topic"
	FieldPage  = "page"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("done", logger.Fields(logger.FieldStage, "explain", logger.FieldItems, 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
