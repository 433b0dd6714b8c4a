package kafka

import (
	"strings"

	apperrors "github.com/kbukum/contentgen/errors"
)

var connectionPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
	"no route to host",
	"network is unreachable",
	"broker not available",
	"leader not available",
	"connection closed",
	"dial tcp",
	"network exception",
}

// IsConnectionError reports whether err looks like a broker connectivity failure.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, p := range connectionPatterns {
		if strings.Contains(errStr, p) {
			return true
		}
	}
	return false
}

// Classify converts a write error into an AppError naming the topic.
// Nothing is marked retryable: publishing is single-attempt.
func Classify(err error, topic string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if IsConnectionError(err) {
		return apperrors.ConnectionFailed("kafka").
			WithCause(err).
			WithDetail("topic", topic)
	}
	return apperrors.ExternalService("kafka", err).WithDetail("topic", topic)
}
