package render

import (
	"fmt"
	"time"
)

// Calendar holds the fixed Swedish strings used by date pickers.
type Calendar struct {
	DateFormat      string   `json:"dateFormat"`
	FirstDay        int      `json:"firstDay"`
	DayNames        []string `json:"dayNames"`
	DayNamesMin     []string `json:"dayNamesMin"`
	DayNamesShort   []string `json:"dayNamesShort"`
	MonthNames      []string `json:"monthNames"`
	MonthNamesShort []string `json:"monthNamesShort"`
}

// Swedish is the only calendar the application ships. Day arrays start on
// Sunday, as time.Weekday does.
var Swedish = Calendar{
	DateFormat:      "yy-mm-dd",
	FirstDay:        1,
	DayNames:        []string{"Söndag", "Måndag", "Tisdag", "Onsdag", "Torsdag", "Fredag", "Lördag"},
	DayNamesMin:     []string{"Sö", "Må", "Ti", "On", "To", "Fr", "Lö"},
	DayNamesShort:   []string{"Sön", "Mån", "Tis", "Ons", "Tor", "Fre", "Lör"},
	MonthNames:      []string{"Januari", "Februari", "Mars", "April", "Maj", "Juni", "Juli", "Augusti", "September", "Oktober", "November", "December"},
	MonthNamesShort: []string{"Jan", "Feb", "Mar", "Apr", "Maj", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dec"},
}

// DateLayout is the Go layout matching the picker's "yy-mm-dd" format.
const DateLayout = "2006-01-02"

// LongDate formats t as e.g. "Måndag 3 Mars 2025".
func (c Calendar) LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", c.DayNames[t.Weekday()], t.Day(), c.MonthNames[t.Month()-1], t.Year())
}

// ParseDate parses a picker value.
func (c Calendar) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
