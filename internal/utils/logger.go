package utils

import (
	"fmt"
	"log"
	"strings"
)

// LogEvent prints a console log line tagged with module, action and
// request_id. Keep message short; never dump request bodies.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// KV renders alternating key/value pairs as "k1=v1 k2=v2" for LogEvent
// messages. A trailing key without value is dropped.
func KV(pairs ...any) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		v := fmt.Sprint(pairs[i+1])
		if strings.ContainsAny(v, " \t") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, "%v=%s", pairs[i], v)
	}
	return b.String()
}
