package booking

import (
	"strconv"
	"strings"
)

// ExpandSlots expands a booking's [startHour, startHour+duration) range into
// individual whole-hour slot labels. Hours that would fall at or past 24:00
// are dropped, never wrapped onto the next day: a booking starting 22:00 with
// duration 4 occupies {22:00, 23:00} only.
func ExpandSlots(startHour, durationHours int) []string {
	var slots []string
	for h := startHour; h < startHour+durationHours; h++ {
		if h >= 24 {
			break
		}
		slots = append(slots, SlotLabel(h))
	}
	return slots
}

// OccupiedSlots collects the occupied slot labels of a set of bookings.
// Duplicate labels from overlapping records collapse into one.
func OccupiedSlots(bookings []*Booking) []string {
	seen := make(map[string]struct{})
	var slots []string
	for _, b := range bookings {
		for _, slot := range ExpandSlots(b.StartHour, b.DurationHours) {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}
	return slots
}

// ParseSlotTime parses a "HH:MM" slot label into its hour. Only whole-hour
// labels with minutes "00" are accepted.
func ParseSlotTime(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || parts[1] != "00" {
		return 0, ErrInvalidStartTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidStartTime
	}
	return hour, nil
}
