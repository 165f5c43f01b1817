package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNewBookingReferenceFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.Local)
	ref := NewBookingReference(now)
	if !strings.HasPrefix(ref, "WFB20260315") {
		t.Fatalf("unexpected prefix: %q", ref)
	}
	if len(ref) != len("WFB20260315")+3 {
		t.Fatalf("suffix should be three digits: %q", ref)
	}
}

func TestQRPayload(t *testing.T) {
	if got := QRPayload("WFB20260315042"); got != "WFB-WFB20260315042" {
		t.Fatalf("unexpected payload: %q", got)
	}
}

func TestNewTransactionID(t *testing.T) {
	id := NewTransactionID()
	if !strings.HasPrefix(id, "TXN-") || len(id) != 4+36 {
		t.Fatalf("unexpected transaction id: %q", id)
	}
	if id == NewTransactionID() {
		t.Fatalf("transaction ids should not repeat")
	}
}

func TestDayName(t *testing.T) {
	// 2026-03-15 is a Sunday
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if got := DayName(d); got != "sunday" {
		t.Fatalf("expected sunday, got %q", got)
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp0",
		950:     "Rp950",
		125000:  "Rp125.000",
		2500000: "Rp2.500.000",
		-7000:   "-Rp7.000",
	}
	for amount, want := range cases {
		if got := FormatRupiah(amount); got != want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", amount, got, want)
		}
	}
}
