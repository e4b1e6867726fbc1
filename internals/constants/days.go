package constants

// DayName values stored on opening times and planning activities.
const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

// Days is ordered the way calendars are displayed: monday first.
var Days = []string{
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
	DaySaturday,
	DaySunday,
}

func IsValidDay(d string) bool {
	for _, x := range Days {
		if x == d {
			return true
		}
	}
	return false
}
