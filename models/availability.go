package models

import "time"

// WorkingHours is a professional's bookable window on one calendar day.
type WorkingHours struct {
	Open  time.Time `json:"open"`
	Close time.Time `json:"close"`
}

// Contains reports whether [start, end) lies entirely inside the window.
func (w WorkingHours) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// Minutes is the length of the window.
func (w WorkingHours) Minutes() int {
	return int(w.Close.Sub(w.Open) / time.Minute)
}
