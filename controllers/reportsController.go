package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/IhorDund/Invenlytics/reports"
)

type GenerateReportRequest struct {
	ReportType string `json:"reportType" binding:"required"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type ReportRow struct {
	Date       string
	Product    string
	Quantity   int
	Price      float64
	TotalValue float64
}

func (h *Handler) ProfitReport(c *gin.Context) {
	start, end, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	report, err := h.Reports.ProfitReport(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) StockSnapshot(c *gin.Context) {
	snapshot, err := h.Reports.StockSnapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) InventoryValuation(c *gin.Context) {
	value, err := h.Reports.InventoryValuation()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_value": value})
}

// GenerateReport renders one of the ledger reports as a downloadable PDF.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	rows, title, err := h.fetchReportData(req.ReportType, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pdf, err := renderPDF(rows, title, req.ReportType, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.pdf", req.ReportType))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) fetchReportData(reportType string, start, end time.Time) ([]ReportRow, string, error) {
	var rows []ReportRow
	var title string

	switch reportType {
	case "sales":
		sales, err := h.Reports.SalesBetween(start, end)
		if err != nil {
			return nil, "", err
		}
		for _, sale := range sales {
			rows = append(rows, ReportRow{
				Date:       sale.Date.Format(dateLayout),
				Product:    sale.Product.Name,
				Quantity:   sale.Quantity,
				Price:      sale.SalePrice,
				TotalValue: float64(sale.Quantity) * sale.SalePrice,
			})
		}
		title = "Sales Report"

	case "purchases":
		purchases, err := h.Reports.PurchasesBetween(start, end)
		if err != nil {
			return nil, "", err
		}
		for _, purchase := range purchases {
			rows = append(rows, ReportRow{
				Date:       purchase.Date.Format(dateLayout),
				Product:    purchase.Product.Name,
				Quantity:   purchase.Quantity,
				Price:      purchase.PurchasePrice,
				TotalValue: float64(purchase.Quantity) * purchase.PurchasePrice,
			})
		}
		title = "Purchases Report"

	case "current-stock":
		snapshot, err := h.Reports.StockSnapshot()
		if err != nil {
			return nil, "", err
		}
		products, err := h.Ledger.Products()
		if err != nil {
			return nil, "", err
		}
		prices := make(map[uint]float64, len(products))
		for _, product := range products {
			prices[product.ID] = product.PurchasePrice
		}
		for _, item := range snapshot {
			rows = append(rows, ReportRow{
				Product:    item.Name,
				Quantity:   item.Quantity,
				Price:      prices[item.ProductID],
				TotalValue: float64(item.Quantity) * prices[item.ProductID],
			})
		}
		title = "Current Stock Report"

	case "profit":
		report, err := h.Reports.ProfitReport(start, end)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows,
			ReportRow{Product: "Total income", TotalValue: report.Income},
			ReportRow{Product: "Total expense", TotalValue: report.Expense},
			ReportRow{Product: "Net profit", TotalValue: report.Profit},
		)
		title = "Profit Report"

	default:
		return nil, "", fmt.Errorf("invalid report type %q", reportType)
	}

	return rows, title, nil
}

func renderPDF(rows []ReportRow, title, reportType string, start, end time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if reportType != "current-stock" {
		rangeLine := fmt.Sprintf("Date Range: %s to %s", start.Format(dateLayout), end.Format(dateLayout))
		if start.Equal(reports.RangeStart) && end.Equal(reports.RangeEnd) {
			rangeLine = "Date Range: all records"
		}
		pdf.CellFormat(0, 10, rangeLine, "", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	if reportType == "sales" {
		var totalItems int
		var totalValue float64
		for _, row := range rows {
			totalItems += row.Quantity
			totalValue += row.TotalValue
		}
		pdf.CellFormat(0, 10, fmt.Sprintf("Total Items Sold: %d", totalItems), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Total Sales: %.2f", totalValue), "", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(40, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 10, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Total Value", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(40, 10, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 10, row.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", row.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", row.TotalValue), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
