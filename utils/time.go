package utils

import "time"

// IST is India Standard Time. India observes no daylight saving, so a fixed zone is exact.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// NowIST returns the current time in IST
func NowIST() time.Time {
	return time.Now().In(IST)
}

// FormatIST formats t in IST as "2006-01-02 15:04:05"
func FormatIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02 15:04:05")
}
