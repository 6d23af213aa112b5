package utils

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogEvent emits a standardized event line with module/action/request_id
// fields. Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	log.WithFields(log.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogFault is for internal faults that indicate a caller bug (e.g. an
// invalid lifecycle transition). These are logged loudly with context.
func LogFault(requestID, module, action string, err error) {
	log.WithFields(log.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error("internal fault")
}
