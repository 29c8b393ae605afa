package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/lztmeat/inventario-api/internal/application/analytics"
	"github.com/lztmeat/inventario-api/internal/application/report"
)

// ReportHandler reportes: PDF de stock, CSV diario y resumen de ventas.
type ReportHandler struct {
	stock     *report.StockReportUseCase
	daily     *report.DailySalesUseCase
	dashboard *appanalytics.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(stock *report.StockReportUseCase, daily *report.DailySalesUseCase, dashboard *appanalytics.DashboardUseCase) *ReportHandler {
	return &ReportHandler{stock: stock, daily: daily, dashboard: dashboard}
}

// StockPDF godoc
// @Summary      Reporte PDF de stock
// @Description  Stock por ubicación e ingredientes en o bajo el punto de reorden.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.stock.DownloadStockPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// DailyCSV godoc
// @Summary      Ventas del día en CSV
// @Description  Una fila por venta del día. Sin date usa la fecha del servidor; sin location incluye todas las ubicaciones.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        date      query  string  false  "Fecha YYYY-MM-DD"
// @Param        location  query  string  false  "Id o nombre de la ubicación"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/daily.csv [get]
func (h *ReportHandler) DailyCSV(c *fiber.Ctx) error {
	out, filename, err := h.daily.DownloadDailyCSV(c.Context(), c.Query("date"), c.Query("location"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// SalesSummary devuelve los KPIs de ventas del día y del mes en curso.
// GET /api/reports/sales-summary?location=
//
// Sin location agrega todas las ubicaciones; las fechas se calculan en el servidor.
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context(), c.Query("location"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
