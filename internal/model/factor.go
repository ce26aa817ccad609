package model

import "time"

// LifestyleFactor is a freeform boolean flag recorded for a day, such as
// "worked_late" or "screen_before_bed". Names are free text so new factors
// can be tracked without schema changes.
type LifestyleFactor struct {
	Date  time.Time
	Name  string
	Value bool
}
