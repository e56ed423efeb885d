package view

import "github.com/javiermolinar/ttg/internal/timegrid"

// Days returns the grid columns, Monday to Friday plus Saturday when asked.
func Days(saturday bool) []timegrid.Weekday {
	days := timegrid.Weekdays()
	if !saturday {
		days = days[:timegrid.Saturday]
	}
	return days
}

// HeaderLabels builds column labels: the time column, then one per day.
func HeaderLabels(days []timegrid.Weekday) []string {
	labels := make([]string, 0, len(days)+1)
	labels = append(labels, "Time")
	for _, d := range days {
		labels = append(labels, d.String())
	}
	return labels
}
