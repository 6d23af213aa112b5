package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

// DocsService renders booking e-tickets and payment receipts as PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	TripRepo    repositories.TripRepository
	RouteRepo   repositories.RouteRepository
	PickupRepo  repositories.PickupPointRepository
	RequestID   string
	Loader      func(int64) (bookingDocData, error) // test hook
}

type bookingDocData struct {
	BookingID     int64
	Code          string
	SeatCount     int
	RouteName     string
	StartPoint    string
	EndPoint      string
	PickupName    string
	Departure     string
	TicketFare    int64
	ParkingFee    int64
	HomePickupFee int64
	TotalFare     int64
	Status        string
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) GenerateReceipt(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out bookingDocData

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	out.BookingID = b.ID
	out.Code = b.Code
	out.SeatCount = b.SeatCount
	out.TicketFare = b.TicketFare
	out.ParkingFee = b.ParkingFee
	out.HomePickupFee = b.HomePickupFee
	out.TotalFare = b.TotalFare
	out.Status = b.Status

	if trip, err := s.TripRepo.GetByID(b.TripID); err == nil {
		out.Departure = trip.ScheduledDeparture.Format("2006-01-02 15:04")
		if route, err := s.RouteRepo.GetByID(trip.RouteID); err == nil {
			out.RouteName = route.Name
			out.StartPoint = route.StartPoint
			out.EndPoint = route.EndPoint
		}
	}
	if pickup, err := s.PickupRepo.GetByID(b.PickupPointID); err == nil {
		out.PickupName = pickup.Name
	}
	return out, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SHUTTLE E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code : %s", safe(d.Code, "-")),
		fmt.Sprintf("Route        : %s (%s -> %s)", safe(d.RouteName, "-"), safe(d.StartPoint, "-"), safe(d.EndPoint, "-")),
		fmt.Sprintf("Pickup Point : %s", safe(d.PickupName, "-")),
		fmt.Sprintf("Departure    : %s", safe(d.Departure, "-")),
		fmt.Sprintf("Seats        : %d", d.SeatCount),
		fmt.Sprintf("Status       : %s", safe(d.Status, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket when boarding. Seats are held until departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.Code))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt No : RCPT-"+safeFilenamePart(d.Code))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Fare breakdown:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Ticket (%d seat(s))  %s", d.SeatCount, utils.FormatINR(d.TicketFare)))
	pdf.Ln(6)
	if d.ParkingFee > 0 {
		pdf.Cell(0, 6, "Parking              "+utils.FormatINR(d.ParkingFee))
		pdf.Ln(6)
	}
	if d.HomePickupFee > 0 {
		pdf.Cell(0, 6, "Home pickup          "+utils.FormatINR(d.HomePickupFee))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatINR(d.TotalFare))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Receipt for booking %s, route %s.", safe(d.Code, "-"), safe(d.RouteName, "-")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(d.Code))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
