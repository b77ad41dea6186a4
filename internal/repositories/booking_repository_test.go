package repositories

import (
	"testing"
	"time"
)

func TestBuildBookingWhere_EmptyFilter(t *testing.T) {
	where, args := buildBookingWhere(Filter{})
	if where != "" {
		t.Fatalf("expected empty where clause, got %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildBookingWhere_CombinesConditions(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	where, args := buildBookingWhere(Filter{
		UserID:    1,
		EventID:   2,
		Status:    "confirmed",
		StartDate: &start,
		EndDate:   &end,
	})

	want := " WHERE user_id=? AND event_id=? AND status=? AND booking_date >= ? AND booking_date <= ?"
	if where != want {
		t.Fatalf("where clause mismatch:\n got %q\nwant %q", where, want)
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[0] != int64(1) || args[1] != int64(2) || args[2] != "confirmed" {
		t.Fatalf("args in wrong order: %v", args)
	}
}

func TestBuildBookingWhere_VendorScope(t *testing.T) {
	where, args := buildBookingWhere(Filter{VendorID: 9})
	if where != " WHERE vendor_id=?" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildBookingOrder(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want string
	}{
		{"default on empty", Filter{}, " ORDER BY created_at DESC"},
		{"unknown field falls back", Filter{SortBy: "price; DROP TABLE bookings"}, " ORDER BY created_at DESC"},
		{"price ascending", Filter{SortBy: "price"}, " ORDER BY price ASC"},
		{"booking date descending", Filter{SortBy: "bookingDate", SortDesc: true}, " ORDER BY booking_date DESC"},
	}
	for _, tc := range cases {
		if got := buildBookingOrder(tc.f); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
