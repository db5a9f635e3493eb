package parse

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Clock parses a 24-hour "HH:MM" string into hour and minute.
func Clock(raw string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, fmt.Errorf("time %q is not in HH:MM format", raw)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}
