package app

import "log"

// Debug enables verbose logging.
var Debug bool

func debugf(format string, args ...any) {
	if Debug {
		log.Printf("[DEBUG] "+format, args...)
	}
}
