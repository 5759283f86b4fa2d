package dining

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeRangeRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s*([ap]\.?m\.?)\s*[-–]\s*(\d{1,2}:\d{2})\s*([ap]\.?m\.?)`)

// OpenNow reports whether any of the hall's meal windows for t's weekday
// contains t. Missing hours, "Closed", and unparsable text count as closed.
func (h *HallRecord) OpenNow(t time.Time) bool {
	if h.Hours == nil {
		return false
	}
	hours, ok := h.Hours[DayCode(t)]
	if !ok || hours == nil {
		return false
	}
	now := t.Format("15:04")
	for _, window := range []string{hours.Breakfast, hours.Lunch, hours.Dinner, hours.ExtDinner} {
		if timeInRange(now, window) {
			return true
		}
	}
	return false
}

func timeInRange(now, window string) bool {
	m := timeRangeRe.FindStringSubmatch(window)
	if m == nil {
		return false
	}
	start := to24Hour(m[1], m[2])
	end := to24Hour(m[3], m[4])
	if end < start {
		// Window crosses midnight, e.g. "9:00 p.m. - 12:00 a.m.".
		return now >= start || now <= end
	}
	return start <= now && now <= end
}

func to24Hour(clock, period string) string {
	colon := strings.Index(clock, ":")
	hour, err := strconv.Atoi(clock[:colon])
	if err != nil {
		return "00:00"
	}
	p := strings.ToLower(period)
	if strings.HasPrefix(p, "p") && hour != 12 {
		hour += 12
	} else if strings.HasPrefix(p, "a") && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%s", hour, clock[colon+1:])
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
