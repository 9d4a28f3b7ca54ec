package services

import (
	"bytes"
	"context"
	"testing"

	"hotelbooking/errors"
	"hotelbooking/models"

	"github.com/shopspring/decimal"
)

func testInvoice() models.Invoice {
	return models.Invoice{
		ID:            "inv-1",
		InvoiceCode:   "HD0001",
		HotelName:     "Khách sạn Biển Xanh",
		RoomName:      "Phòng Deluxe",
		GuestName:     "Nguyễn Văn A",
		CheckInDate:   mustDay("2025-07-05"),
		CheckOutDate:  mustDay("2025-07-08"),
		PricePerNight: decimal.RequireFromString("0.10"),
		Lines: []models.InvoiceLine{
			{Name: "Ăn sáng", UnitPrice: decimal.RequireFromString("0.20"), Quantity: 1},
		},
		TotalAmount: decimal.RequireFromString("999"),
		PaidAmount:  decimal.RequireFromString("0.25"),
	}
}

func TestTotalInvoiceRecomputesWithDecimals(t *testing.T) {
	inv, err := TotalInvoice(testInvoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Nights != 3 {
		t.Fatalf("nights = %d", inv.Nights)
	}
	// 3 × 0.10 + 0.20 = 0.50, không lệch kiểu float
	if !inv.TotalAmount.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("total = %s", inv.TotalAmount)
	}
	if !inv.RemainingAmount.Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("remaining = %s", inv.RemainingAmount)
	}
	if !inv.Lines[0].LineTotal.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("line total = %s", inv.Lines[0].LineTotal)
	}
}

func TestTotalInvoiceRemainingNeverNegative(t *testing.T) {
	in := testInvoice()
	in.PaidAmount = decimal.NewFromInt(10)
	inv, err := TotalInvoice(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.RemainingAmount.IsZero() {
		t.Fatalf("remaining = %s", inv.RemainingAmount)
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	inv, _ := TotalInvoice(testInvoice())
	raw, err := RenderInvoicePDF(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"1234567.5": "1.234.567,50",
		"0":         "0,00",
		"999":       "999,00",
		"-1000.1":   "-1.000,10",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatAmount(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestFacadeInvoice(t *testing.T) {
	api := newFakeAPI()
	api.invoice = testInvoice()
	facade, _, _, _ := newTestFacade(api)

	inv, err := facade.Invoice(context.Background(), guestSession, "inv-1")
	if err != nil || !inv.TotalAmount.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("unexpected invoice %v %+v", err, inv)
	}
	if _, err := facade.Invoice(context.Background(), guestSession, "nope"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
