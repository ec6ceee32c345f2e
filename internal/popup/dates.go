package popup

import "time"

// FormatDate renders a result date: "Jan 2" within the current year,
// "Jan 2, 2006" otherwise. Zero times render empty.
func FormatDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}
