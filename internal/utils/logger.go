package utils

import (
	"log"
	"strings"
)

// LogEvent writes one application log line tagged by module. Messages stay
// short summaries; raw payloads and credentials never go through here.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] request_id=%s action=%s msg=%s",
		strings.ToUpper(strings.TrimSpace(module)),
		strings.TrimSpace(requestID),
		action,
		message,
	)
}
