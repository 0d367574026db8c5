package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/labstack/echo/v4"
)

// RegisterProduct handles POST /api/v1/products.
func (s *Server) RegisterProduct(c echo.Context) error {
	var req NewProductRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	id, err := parseID("id", req.ID, true)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRegisterProductCommand(id, req.Name, req.Services.toDomain())
	if err != nil {
		return s.fail(c, err)
	}
	p, err := s.handlers.RegisterProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, productFrom(p))
}

// RegisterStaff handles POST /api/v1/staff.
func (s *Server) RegisterStaff(c echo.Context) error {
	var req NewStaffRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	id, err := parseID("id", req.ID, true)
	if err != nil {
		return s.fail(c, err)
	}
	role, err := staff.ParseRole(req.Role)
	if err != nil {
		return s.fail(c, err)
	}
	additional := make([]staff.Role, 0, len(req.AdditionalRoles))
	for _, raw := range req.AdditionalRoles {
		r, err := staff.ParseRole(raw)
		if err != nil {
			return s.fail(c, err)
		}
		additional = append(additional, r)
	}

	cmd, err := commands.NewRegisterStaffCommand(id, req.Name, role, req.Department, additional...)
	if err != nil {
		return s.fail(c, err)
	}
	member, err := s.handlers.RegisterStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, staffFrom(member))
}

// ConfigureCommission handles PUT /api/v1/staff/{staffId}/commission.
func (s *Server) ConfigureCommission(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req CommissionPlanRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cur, tiers, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfigureCommissionCommand(staffID, cur, tiers)
	if err != nil {
		return s.fail(c, err)
	}
	plan, err := s.handlers.ConfigureCommission.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, commissionPlanFrom(plan))
}

// GetCommissionSummary handles GET /api/v1/staff/{staffId}/commission.
func (s *Server) GetCommissionSummary(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetCommissionSummaryQuery(staffID)
	if err != nil {
		return s.fail(c, err)
	}
	summary, err := s.handlers.GetCommissionSummary.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, commissionSummaryFrom(summary))
}

// ComputeCommission handles POST /api/v1/staff/{staffId}/commission/entries.
// Posting the same invoice twice returns the entry recorded the first time.
func (s *Server) ComputeCommission(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req InvoiceRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	amount, err := req.Amount.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewComputeCommissionCommand(staffID, req.InvoiceID, req.OrderCount, amount)
	if err != nil {
		return s.fail(c, err)
	}
	entry, err := s.handlers.ComputeCommission.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, entryFrom(entry))
}

// MarkCommissionPaid handles POST /api/v1/staff/{staffId}/commission/entries/{entryId}/paid.
func (s *Server) MarkCommissionPaid(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	entryID, err := parseID("entryId", c.Param("entryId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewMarkCommissionPaidCommand(staffID, entryID)
	if err != nil {
		return s.fail(c, err)
	}
	entry, err := s.handlers.MarkCommissionPaid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, entryFrom(entry))
}

// ConfigureSalary handles PUT /api/v1/staff/{staffId}/salary.
func (s *Server) ConfigureSalary(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req SalaryRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	terms, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfigureSalaryCommand(staffID, terms)
	if err != nil {
		return s.fail(c, err)
	}
	salary, err := s.handlers.ConfigureSalary.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, salaryEntityFrom(salary))
}

// GetPerformance handles GET /api/v1/staff/{staffId}/performance.
func (s *Server) GetPerformance(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetPerformanceQuery(staffID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetPerformance.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, performanceFrom(view))
}

// RecordPerformanceEvent handles POST /api/v1/staff/{staffId}/performance/events.
func (s *Server) RecordPerformanceEvent(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req PerformanceEventRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	eventType, err := performance.ParseEventType(req.Type)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := parseOptionalID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordPerformanceEventCommand(staffID, eventType, orderID, req.Key)
	if err != nil {
		return s.fail(c, err)
	}
	rec, err := s.handlers.RecordPerformanceEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, recordFrom(rec))
}

// GenerateMonthlyReport handles POST /api/v1/staff/{staffId}/performance/reports.
func (s *Server) GenerateMonthlyReport(c echo.Context) error {
	staffID, err := parseID("staffId", c.Param("staffId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req ReportRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	period, err := performance.ParsePeriod(req.Period)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewGenerateMonthlyReportCommand(staffID, period)
	if err != nil {
		return s.fail(c, err)
	}
	report, err := s.handlers.GenerateMonthlyReport.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, reportFrom(report))
}

// ListMonthlyReports handles GET /api/v1/performance/reports?period=YYYY-MM.
func (s *Server) ListMonthlyReports(c echo.Context) error {
	period, err := performance.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return s.fail(c, err)
	}
	staffID, err := parseOptionalID("staffId", c.QueryParam("staffId"))
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewListMonthlyReportsQuery(period, staffID)
	if err != nil {
		return s.fail(c, err)
	}
	reports, err := s.handlers.ListMonthlyReports.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, reportFrom(r))
	}
	return c.JSON(http.StatusOK, resp)
}
