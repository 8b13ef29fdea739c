package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"herbsera/models"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/mongo"
)

// PrintInvoice handles GET /api/orders/:id/invoice (owner or admin).
// Renders a PDF with the line items, price breakdown and a QR code of
// the order number for package tracking.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("PrintInvoice lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	qrPNG, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		log.Printf("PrintInvoice QR generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order Number: %s", order.OrderNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Ship To: %s, %s, %s %s", order.ShippingAddress.Name,
		order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.Pincode))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Item", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Subtotal", order.Pricing.Subtotal},
		{"Tax (18% GST)", order.Pricing.Tax},
		{"Shipping", order.Pricing.ShippingCost},
		{"Discount", order.Pricing.Discount},
		{"Total", order.Pricing.Total},
	} {
		pdf.CellFormat(150, 8, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", row.value), "", 1, "R", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("PrintInvoice PDF render failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderNumber))
	w.Write(buf.Bytes())
}
