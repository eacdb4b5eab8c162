package logging

import (
	"fmt"
	"strings"
)

// GormWriter adapts the global logger to gorm's logger.Writer. Slow query
// and error lines from gorm are promoted to warn; SQL traces stay at debug.
type GormWriter struct{}

func (GormWriter) Printf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if strings.Contains(msg, "SLOW SQL") || strings.Contains(msg, "error") {
		Warn().Str("component", "gorm").Msg(msg)
		return
	}
	Debug().Str("component", "gorm").Msg(msg)
}
