package orders

import "testing"

func TestFormatOrderNumber(t *testing.T) {
	if got := FormatOrderNumber(7); got != "DC-000007" {
		t.Fatalf("expected DC-000007, got %s", got)
	}
	if got := FormatOrderNumber(1234567); got != "DC-1234567" {
		t.Fatalf("padding must not truncate, got %s", got)
	}
}
