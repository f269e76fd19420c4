package models

import "time"

// DayHours guarda início e fim do expediente em "HH:MM".
type DayHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHoursSpec é indexado pelo nome do dia em inglês ("monday", ...).
type WorkingHoursSpec map[string]DayHours

var weekdayKeys = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

func IsWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}
