package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	CreateOrder            commands.CreateOrderCommandHandler
	AssignOrderStaff       commands.AssignOrderStaffCommandHandler
	AcceptOrder            commands.AcceptOrderCommandHandler
	RejectOrder            commands.RejectOrderCommandHandler
	ResubmitOrder          commands.ResubmitOrderCommandHandler
	AddComment             commands.AddCommentCommandHandler
	RegisterProduct        commands.RegisterProductCommandHandler
	RegisterStaff          commands.RegisterStaffCommandHandler
	ConfigureCommission    commands.ConfigureCommissionCommandHandler
	ComputeCommission      commands.ComputeCommissionCommandHandler
	MarkCommissionPaid     commands.MarkCommissionPaidCommandHandler
	ConfigureSalary        commands.ConfigureSalaryCommandHandler
	RecordPerformanceEvent commands.RecordPerformanceEventCommandHandler
	GenerateMonthlyReport  commands.GenerateMonthlyReportCommandHandler

	GetOrder             queries.GetOrderQueryHandler
	GetOrderTimeline     queries.GetOrderTimelineQueryHandler
	GetDeadlineStatus    queries.GetDeadlineStatusQueryHandler
	ListActiveDeadlines  queries.ListActiveDeadlinesQueryHandler
	GetCommissionSummary queries.GetCommissionSummaryQueryHandler
	GetPerformance       queries.GetPerformanceQueryHandler
	ListMonthlyReports   queries.ListMonthlyReportsQueryHandler
}

// Server maps HTTP requests onto command and query handlers. Requests are
// checked against the embedded OpenAPI document before they reach a handler.
type Server struct {
	handlers Handlers
	clock    commands.Clock
	logger   *slog.Logger
	validate echo.MiddlewareFunc
}

func NewServer(ctx context.Context, handlers Handlers, clock commands.Clock, logger *slog.Logger) (*Server, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	return &Server{
		handlers: handlers,
		clock:    clock,
		logger:   logger.With("component", "http"),
		validate: validate,
	}, nil
}

// Register installs middleware and routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = newStructValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", s.validate)

	api.POST("/products", s.RegisterProduct)
	api.POST("/staff", s.RegisterStaff)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/assignments", s.AssignOrderStaff)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/reject", s.RejectOrder)
	api.POST("/orders/:orderId/resubmit", s.ResubmitOrder)
	api.GET("/orders/:orderId/deadline", s.GetDeadlineStatus)
	api.GET("/orders/:orderId/timeline", s.GetOrderTimeline)
	api.POST("/orders/:orderId/comments", s.AddComment)
	api.GET("/deadlines", s.ListActiveDeadlines)

	api.GET("/staff/:staffId/commission", s.GetCommissionSummary)
	api.PUT("/staff/:staffId/commission", s.ConfigureCommission)
	api.POST("/staff/:staffId/commission/entries", s.ComputeCommission)
	api.POST("/staff/:staffId/commission/entries/:entryId/paid", s.MarkCommissionPaid)
	api.PUT("/staff/:staffId/salary", s.ConfigureSalary)
	api.GET("/staff/:staffId/performance", s.GetPerformance)
	api.POST("/staff/:staffId/performance/events", s.RecordPerformanceEvent)
	api.POST("/staff/:staffId/performance/reports", s.GenerateMonthlyReport)
	api.GET("/performance/reports", s.ListMonthlyReports)
}
