package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/models"
	"rentdesk/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
)

// RentPaymentHandlers handles rent payment HTTP requests, including the
// printable receipt for paid payments.
type RentPaymentHandlers struct {
	paymentService services.RentPaymentService
	tenantService  services.TenantService
}

func NewRentPaymentHandlers(paymentService services.RentPaymentService, tenantService services.TenantService) *RentPaymentHandlers {
	return &RentPaymentHandlers{
		paymentService: paymentService,
		tenantService:  tenantService,
	}
}

func (h *RentPaymentHandlers) CreatePayment(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.PaymentWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	payment, err := h.paymentService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *RentPaymentHandlers) GetPayment(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	payment, err := h.paymentService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *RentPaymentHandlers) UpdatePayment(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.PaymentWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	payment, err := h.paymentService.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *RentPaymentHandlers) DeletePayment(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.paymentService.Delete(c.Request().Context(), actor, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RentPaymentHandlers) ListPayments(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := pagination(c)

	ctx := c.Request().Context()
	var (
		payments []*models.RentPayment
	)
	if c.QueryParam("status") == models.PaymentStatusUnpaid {
		payments, err = h.paymentService.ListUnpaid(ctx, actor, limit, offset)
	} else {
		payments, err = h.paymentService.List(ctx, actor, limit, offset)
	}
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}

// DownloadReceipt renders the receipt for a paid payment as a PDF.
func (h *RentPaymentHandlers) DownloadReceipt(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	ctx := c.Request().Context()
	payment, err := h.paymentService.GetByID(ctx, actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	if payment.Status != models.PaymentStatusPaid {
		return common.RespondError(c, apperrors.Validation("status", "receipts exist only for paid payments"))
	}

	tenant, err := h.tenantService.GetByID(ctx, actor, payment.TenantID)
	if err != nil {
		return common.RespondError(c, err)
	}

	pdfBytes, err := h.renderReceiptPDF(payment, tenant.Name)
	if err != nil {
		return common.RespondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.pdf"`, payment.ReceiptNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *RentPaymentHandlers) renderReceiptPDF(payment *models.RentPayment, tenantName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "RENT PAYMENT RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt Number: %s", payment.ReceiptNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", payment.Month, payment.Year))
	pdf.Ln(8)
	if payment.PaymentDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Payment Date: %s", payment.PaymentDate.Format("02-Jan-2006")))
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "RECEIVED FROM:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tenantName)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Amount: %.2f", payment.Amount))
	pdf.Ln(8)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
