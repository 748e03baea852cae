package trade

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderNumberPrefix builds the date-scoped prefix for order numbers,
// e.g. "ORD20260830" for the 30th of August 2026.
func OrderNumberPrefix(now time.Time) string {
	return now.Format("ORD20060102")
}

// NextOrderNumber derives the next order number for a day given the
// highest existing number with the same prefix. Numbers take the form
// ORD<YYYYMMDD>-<4-digit counter>, starting at 0001 each day. A
// malformed suffix on the last number resets the counter to 1 rather
// than failing the allocation. Gaps from deleted orders are never
// reused.
func NextOrderNumber(last string, now time.Time) string {
	prefix := OrderNumberPrefix(now)
	counter := 1
	if last != "" {
		if idx := strings.LastIndexByte(last, '-'); idx >= 0 {
			if n, err := strconv.Atoi(last[idx+1:]); err == nil {
				counter = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, counter)
}
