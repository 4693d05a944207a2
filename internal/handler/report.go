package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves summaries and transaction export downloads.
type ReportHandler struct {
	Reports *service.ReportService
	Exports *service.ExportService
}

func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{Reports: reports, Exports: exports}
}

func (h *ReportHandler) MonthlyCashflow(c *gin.Context) {
	now := time.Now()
	month := queryInt(c, "month", int(now.Month()))
	year := queryInt(c, "year", now.Year())

	summary, err := h.Reports.MonthlyCashflow(currentUser(c).ID, month, year)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"cashflow": summary})
}

func (h *ReportHandler) SpendByCategory(c *gin.Context) {
	from := queryTime(c, "from")
	to := queryTime(c, "to")
	if from == nil || to == nil {
		util.Fail(c, util.NewValidationError("from and to are required"))
		return
	}

	spend, err := h.Reports.SpendByCategory(currentUser(c).ID, *from, *to)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"categories": spend})
}

func (h *ReportHandler) NetWorth(c *gin.Context) {
	summary, err := h.Reports.NetWorth(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"netWorth": summary})
}

// ExportTransactions streams the ledger as csv (default) or xlsx.
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	from := queryTime(c, "from")
	to := queryTime(c, "to")
	format := c.DefaultQuery("format", "csv")
	stamp := time.Now().Format("20060102")

	switch format {
	case "csv":
		data, err := h.Exports.ExportCSV(currentUser(c).ID, from, to)
		if err != nil {
			util.Fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		data, err := h.Exports.ExportXLSX(currentUser(c).ID, from, to)
		if err != nil {
			util.Fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions-%s.xlsx", stamp))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		util.Fail(c, util.NewValidationError("format must be csv or xlsx"))
	}
}
