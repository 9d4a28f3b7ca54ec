package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/services/hotelapi"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Invoice lấy hóa đơn và tính lại tổng tiền từ ngày ở, giá phòng và các dòng dịch vụ
func (f *BookingFacade) Invoice(ctx context.Context, sess hotelapi.Session, id string) (models.Invoice, error) {
	inv, err := f.api.GetInvoice(ctx, sess, id)
	if err != nil {
		return models.Invoice{}, upstreamError(err, "Không tìm thấy hóa đơn")
	}
	total, err := TotalInvoice(inv)
	if err != nil {
		return models.Invoice{}, err
	}
	if !total.TotalAmount.Equal(inv.TotalAmount) && !inv.TotalAmount.IsZero() {
		f.logger.Warn("invoice %s: total from API %s, recomputed %s", inv.ID, inv.TotalAmount, total.TotalAmount)
	}
	return total, nil
}

// TotalInvoice tính lại số đêm, tiền phòng, tiền dịch vụ, tổng và còn lại (không âm)
func TotalInvoice(inv models.Invoice) (models.Invoice, error) {
	selected := make([]models.SelectedService, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		selected = append(selected, models.SelectedService{
			Service:  models.Service{Name: line.Name, Price: line.UnitPrice},
			Quantity: line.Quantity,
		})
	}
	quote, err := availability.QuoteStay(inv.CheckInDate, inv.CheckOutDate, inv.PricePerNight, selected)
	if err != nil {
		return models.Invoice{}, err
	}

	out := inv
	out.Nights = quote.Nights
	out.RoomTotal = quote.RoomTotal
	out.ServicesTotal = quote.ServicesTotal
	out.TotalAmount = quote.GrandTotal
	out.Lines = make([]models.InvoiceLine, len(quote.ServiceLines))
	for i, l := range quote.ServiceLines {
		out.Lines[i] = models.InvoiceLine{Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity, LineTotal: l.LineTotal}
	}
	out.RemainingAmount = decimal.Max(decimal.Zero, out.TotalAmount.Sub(out.PaidAmount))
	return out, nil
}

// RenderInvoicePDF xuất hóa đơn A4. Font lõi của PDF không có dấu tiếng Việt nên chữ được bỏ dấu.
func RenderInvoicePDF(inv models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceCode, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "HOA DON")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Ma hoa don", inv.InvoiceCode},
		{"Khach san", inv.HotelName},
		{"Phong", inv.RoomName},
		{"Khach hang", inv.GuestName},
		{"Email", inv.GuestEmail},
		{"Nhan phong", inv.CheckInDate.Format(availability.DateLayout)},
		{"Tra phong", inv.CheckOutDate.Format(availability.DateLayout)},
	}
	for _, row := range rows {
		pdf.Cell(40, 7, row[0]+":")
		pdf.Cell(0, 7, pdfText(orDash(row[1])))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Muc", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Don gia", "B", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "SL", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Thanh tien", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	line := func(name string, unit decimal.Decimal, qty int, total decimal.Decimal) {
		pdf.CellFormat(90, 7, pdfText(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, FormatAmount(unit), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprint(qty), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, FormatAmount(total), "", 1, "R", false, 0, "")
	}
	line(fmt.Sprintf("Tien phong (%d dem)", inv.Nights), inv.PricePerNight, inv.Nights, inv.RoomTotal)
	for _, l := range inv.Lines {
		line(l.Name, l.UnitPrice, l.Quantity, l.LineTotal)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	for _, row := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Tong cong", inv.TotalAmount},
		{"Da thanh toan", inv.PaidAmount},
		{"Con lai", inv.RemainingAmount},
	} {
		pdf.CellFormat(140, 8, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, FormatAmount(row.amount), "", 1, "R", false, 0, "")
	}

	if !inv.IssuedAt.IsZero() {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Ngay xuat: "+inv.IssuedAt.Format("2006-01-02 15:04"), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Không thể xuất hóa đơn PDF", err)
	}
	return buf.Bytes(), nil
}

// FormatAmount 1234567.5 -> 1.234.567,50
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "," + frac
}

func pdfText(s string) string {
	return unidecode.Unidecode(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
