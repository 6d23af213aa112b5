package services

import (
	"strings"
	"testing"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(id int64) (bookingDocData, error) {
		return bookingDocData{
			BookingID:  id,
			Code:       "BLR-AB12CD34",
			SeatCount:  2,
			RouteName:  "Whitefield - Electronic City",
			StartPoint: "Whitefield",
			EndPoint:   "Electronic City",
			PickupName: "Hopefarm Signal",
			Departure:  "2026-09-02 08:00",
			TicketFare: 300,
			ParkingFee: 30,
			TotalFare:  330,
			Status:     "CONFIRMED",
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename: %s", filename)
	}

	receipt, rcptName, err := svc.GenerateReceipt(1)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || rcptName == "" {
		t.Fatalf("GenerateReceipt returned empty data")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("BLR-AB12CD34"); got != "BLR-AB12CD34" {
		t.Fatalf("clean code mangled: %s", got)
	}
	if got := safeFilenamePart("a/b\\c:d"); strings.ContainsAny(got, "/\\:") {
		t.Fatalf("separator characters survived: %s", got)
	}
	if got := safeFilenamePart("   "); got != "NA" {
		t.Fatalf("blank input should fall back: %s", got)
	}
}
