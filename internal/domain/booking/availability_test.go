package booking

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestExpandSlots(t *testing.T) {
	tests := []struct {
		name      string
		startHour int
		duration  int
		want      []string
	}{
		{"two hours midday", 14, 2, []string{"14:00", "15:00"}},
		{"single hour", 9, 1, []string{"09:00"}},
		{"late start truncates at midnight", 22, 4, []string{"22:00", "23:00"}},
		{"last slot of the day", 23, 1, []string{"23:00"}},
		{"zero duration", 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandSlots(tt.startHour, tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExpandSlots(%d, %d) = %v, want %v", tt.startHour, tt.duration, got, tt.want)
			}
		})
	}
}

func TestOccupiedSlotsDeduplicates(t *testing.T) {
	studioID := uuid.New()
	bookings := []*Booking{
		{StudioID: studioID, StartHour: 10, DurationHours: 2},
		{StudioID: studioID, StartHour: 11, DurationHours: 2},
	}

	got := OccupiedSlots(bookings)
	want := []string{"10:00", "11:00", "12:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("OccupiedSlots = %v, want %v", got, want)
	}
}

func TestOccupiedSlotsEmpty(t *testing.T) {
	if got := OccupiedSlots(nil); got != nil {
		t.Fatalf("OccupiedSlots(nil) = %v, want nil", got)
	}
}

func TestParseSlotTime(t *testing.T) {
	valid := map[string]int{
		"00:00": 0,
		"09:00": 9,
		"14:00": 14,
		"23:00": 23,
	}
	for in, want := range valid {
		got, err := ParseSlotTime(in)
		if err != nil {
			t.Fatalf("ParseSlotTime(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSlotTime(%q) = %d, want %d", in, got, want)
		}
	}

	invalid := []string{"24:00", "14:30", "9:00", "14", "", "ab:00", "14:0", "-1:00"}
	for _, in := range invalid {
		if _, err := ParseSlotTime(in); !errors.Is(err, ErrInvalidStartTime) {
			t.Fatalf("ParseSlotTime(%q) error = %v, want ErrInvalidStartTime", in, err)
		}
	}
}

func TestSlotLabel(t *testing.T) {
	if got := SlotLabel(9); got != "09:00" {
		t.Fatalf("SlotLabel(9) = %q, want %q", got, "09:00")
	}
	if got := SlotLabel(14); got != "14:00" {
		t.Fatalf("SlotLabel(14) = %q, want %q", got, "14:00")
	}
}
