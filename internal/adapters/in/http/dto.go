package http

import (
	"slices"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Money struct {
	Amount   string `json:"amount" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required,len=3"`
}

func (m Money) toDomain() (kernel.Money, error) {
	return kernel.ParseMoney(m.Amount, m.Currency)
}

func moneyFrom(m kernel.Money) Money {
	return Money{Amount: m.Amount().String(), Currency: m.Currency().Code()}
}

type Services struct {
	Apostille       bool `json:"apostille"`
	Shipping        bool `json:"shipping"`
	POA             bool `json:"poa"`
	FinancialReport bool `json:"financialReport"`
}

func (s Services) toDomain() product.Services {
	return product.Services{
		Apostille:       s.Apostille,
		Shipping:        s.Shipping,
		POA:             s.POA,
		FinancialReport: s.FinancialReport,
	}
}

func servicesFrom(s product.Services) Services {
	return Services{
		Apostille:       s.Apostille,
		Shipping:        s.Shipping,
		POA:             s.POA,
		FinancialReport: s.FinancialReport,
	}
}

// parseID turns a path or body identifier into a kernel.UUID. An empty
// optional id yields a fresh one.
func parseID(param, raw string, optional bool) (kernel.UUID, error) {
	if raw == "" && optional {
		return kernel.NewUUID(), nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func parseOptionalID(param, raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(param, raw, false)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDecimal(param, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return d, nil
}

// Directory.

type NewProductRequest struct {
	ID       string   `json:"id" validate:"omitempty,uuid"`
	Name     string   `json:"name" validate:"required"`
	Services Services `json:"services"`
}

type ProductResponse struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	Services Services    `json:"services"`
}

func productFrom(p *product.Product) ProductResponse {
	return ProductResponse{ID: p.ID(), Name: p.Name(), Services: servicesFrom(p.Services())}
}

type NewStaffRequest struct {
	ID              string   `json:"id" validate:"omitempty,uuid"`
	Name            string   `json:"name" validate:"required"`
	Role            string   `json:"role" validate:"required,oneof=sales operation manager admin"`
	Department      string   `json:"department"`
	AdditionalRoles []string `json:"additionalRoles" validate:"omitempty,dive,oneof=sales operation manager admin"`
}

type StaffResponse struct {
	ID            kernel.UUID `json:"id"`
	Name          string      `json:"name"`
	Role          string      `json:"role"`
	Department    string      `json:"department,omitempty"`
	EligibleRoles []string    `json:"eligibleRoles"`
}

func staffFrom(s *staff.Staff) StaffResponse {
	roles := make([]string, 0, len(s.EligibleRoles()))
	for _, r := range s.EligibleRoles() {
		roles = append(roles, r.String())
	}
	return StaffResponse{
		ID:            s.ID(),
		Name:          s.Name(),
		Role:          s.Role().String(),
		Department:    s.Department(),
		EligibleRoles: roles,
	}
}

// Orders.

type NewOrderRequest struct {
	ID        string   `json:"id" validate:"omitempty,uuid"`
	Number    string   `json:"number" validate:"required"`
	ProductID string   `json:"productId" validate:"required,uuid"`
	Amount    Money    `json:"amount"`
	Countries []string `json:"countries" validate:"omitempty,dive,required"`
	SalesID   string   `json:"salesId" validate:"omitempty,uuid"`
}

type AssignmentRequest struct {
	Party   string `json:"party" validate:"required,oneof=sales operation manager"`
	StaffID string `json:"staffId" validate:"required,uuid"`
}

// TransitionRequest carries the actor of accept, reject and resubmit. Reason
// is read only by reject, notes by the other two.
type TransitionRequest struct {
	ActorID   string `json:"actorId" validate:"required"`
	ActorName string `json:"actorName"`
	Notes     string `json:"notes"`
	Reason    string `json:"reason"`
}

type NewCommentRequest struct {
	AuthorID   string `json:"authorId" validate:"required"`
	AuthorName string `json:"authorName"`
	Body       string `json:"body" validate:"required,max=4000"`
}

type OrderResponse struct {
	ID                 kernel.UUID  `json:"id"`
	Number             string       `json:"number"`
	Status             string       `json:"status"`
	ProductID          kernel.UUID  `json:"productId"`
	Amount             Money        `json:"amount"`
	Countries          []string     `json:"countries"`
	CreatedAt          time.Time    `json:"createdAt"`
	CompletedAt        *time.Time   `json:"completedAt,omitempty"`
	CompletedServices  Services     `json:"completedServices"`
	SalesID            *kernel.UUID `json:"salesId,omitempty"`
	OperationID        *kernel.UUID `json:"operationId,omitempty"`
	ManagerID          *kernel.UUID `json:"managerId,omitempty"`
	RejectionReasons   []string     `json:"rejectionReasons"`
	ResponsibleStaffID string       `json:"responsibleStaffId,omitempty"`
	Version            int          `json:"version"`
}

func orderFrom(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:                 v.ID,
		Number:             v.Number,
		Status:             v.Status.String(),
		ProductID:          v.ProductID,
		Amount:             moneyFrom(v.Amount),
		Countries:          nonNil(v.Countries),
		CreatedAt:          v.CreatedAt,
		CompletedAt:        v.CompletedAt,
		CompletedServices:  servicesFrom(v.CompletedServices),
		SalesID:            v.SalesID,
		OperationID:        v.OperationID,
		ManagerID:          v.ManagerID,
		RejectionReasons:   nonNil(v.RejectionReasons),
		ResponsibleStaffID: v.ResponsibleID,
		Version:            v.Version,
	}
}

type DeadlineResponse struct {
	OrderID            kernel.UUID `json:"orderId"`
	OrderNumber        string      `json:"orderNumber"`
	Stage              string      `json:"stage"`
	DeadlineAt         time.Time   `json:"deadlineAt"`
	RemainingSeconds   int64       `json:"remainingSeconds"`
	State              string      `json:"state"`
	ResponsibleStaffID string      `json:"responsibleStaffId,omitempty"`
}

func deadlineFrom(d queries.DeadlineStatus) DeadlineResponse {
	return DeadlineResponse{
		OrderID:            d.OrderID,
		OrderNumber:        d.OrderNumber,
		Stage:              d.Stage.String(),
		DeadlineAt:         d.DeadlineAt,
		RemainingSeconds:   int64(d.Remaining / time.Second),
		State:              d.State.String(),
		ResponsibleStaffID: d.ResponsibleStaffID,
	}
}

const (
	timelineHistory = "history"
	timelineComment = "comment"
)

// TimelineEntry is either a history entry or a comment, told apart by Kind.
type TimelineEntry struct {
	Kind           string      `json:"kind"`
	ID             kernel.UUID `json:"id"`
	CreatedAt      time.Time   `json:"createdAt"`
	ActorID        string      `json:"actorId"`
	ActorName      string      `json:"actorName,omitempty"`
	PreviousStatus string      `json:"previousStatus,omitempty"`
	NewStatus      string      `json:"newStatus,omitempty"`
	Action         string      `json:"action,omitempty"`
	Reason         string      `json:"reason,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Body           string      `json:"body,omitempty"`
}

type TimelineResponse struct {
	Order   OrderResponse   `json:"order"`
	Entries []TimelineEntry `json:"entries"`
}

// timelineFrom merges the history ledger and the comments by time. History
// wins ties so a comment never appears before the transition it follows.
func timelineFrom(t queries.OrderTimeline) TimelineResponse {
	entries := make([]TimelineEntry, 0, len(t.History)+len(t.Comments))
	for _, h := range t.History {
		entries = append(entries, TimelineEntry{
			Kind:           timelineHistory,
			ID:             h.ID,
			CreatedAt:      h.CreatedAt,
			ActorID:        h.ActorID,
			ActorName:      h.ActorName,
			PreviousStatus: h.PreviousStatus.String(),
			NewStatus:      h.NewStatus.String(),
			Action:         h.Action.String(),
			Reason:         h.Reason,
			Notes:          h.Notes,
		})
	}
	for _, c := range t.Comments {
		entries = append(entries, TimelineEntry{
			Kind:      timelineComment,
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			ActorID:   c.AuthorID,
			ActorName: c.AuthorName,
			Body:      c.Body,
		})
	}
	slices.SortStableFunc(entries, func(a, b TimelineEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return TimelineResponse{Order: orderFrom(t.Order), Entries: entries}
}

type CommentResponse struct {
	ID         kernel.UUID `json:"id"`
	OrderID    kernel.UUID `json:"orderId"`
	AuthorID   string      `json:"authorId"`
	AuthorName string      `json:"authorName,omitempty"`
	Body       string      `json:"body"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func commentFrom(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID(),
		OrderID:    c.OrderID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Body:       c.Body(),
		CreatedAt:  c.CreatedAt(),
	}
}

// Commission.

type Tier struct {
	MinCount int    `json:"minCount" validate:"required,min=1"`
	MaxCount *int   `json:"maxCount,omitempty" validate:"omitempty,min=1"`
	Rate     string `json:"rate" validate:"required,numeric"`
	Fixed    string `json:"fixed" validate:"required,numeric"`
}

type CommissionPlanRequest struct {
	Currency string `json:"currency" validate:"required,len=3"`
	Tiers    []Tier `json:"tiers" validate:"required,min=1,dive"`
}

func (r CommissionPlanRequest) toDomain() (kernel.Currency, []commission.Tier, error) {
	cur, err := kernel.NewCurrency(r.Currency)
	if err != nil {
		return kernel.Currency{}, nil, err
	}
	tiers := make([]commission.Tier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		rate, err := parseDecimal("rate", t.Rate)
		if err != nil {
			return kernel.Currency{}, nil, err
		}
		fixed, err := kernel.ParseMoney(t.Fixed, r.Currency)
		if err != nil {
			return kernel.Currency{}, nil, err
		}
		tier, err := commission.NewTier(t.MinCount, t.MaxCount, rate, fixed)
		if err != nil {
			return kernel.Currency{}, nil, err
		}
		tiers = append(tiers, tier)
	}
	return cur, tiers, nil
}

func tierFrom(t commission.Tier) Tier {
	return Tier{MinCount: t.Min(), MaxCount: t.Max(), Rate: t.Rate().String(), Fixed: t.Fixed().Amount().String()}
}

type InvoiceRequest struct {
	InvoiceID  string `json:"invoiceId" validate:"required"`
	OrderCount int    `json:"orderCount" validate:"required,min=1"`
	Amount     Money  `json:"amount"`
}

type EntryResponse struct {
	ID            kernel.UUID `json:"id"`
	InvoiceID     string      `json:"invoiceId"`
	OrderCount    int         `json:"orderCount"`
	Tier          Tier        `json:"tier"`
	InvoiceAmount Money       `json:"invoiceAmount"`
	Commission    Money       `json:"commission"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	PaidAt        *time.Time  `json:"paidAt,omitempty"`
}

func entryFrom(e commission.Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID(),
		InvoiceID:     e.InvoiceID(),
		OrderCount:    e.OrderCount(),
		Tier:          tierFrom(e.Tier()),
		InvoiceAmount: moneyFrom(e.InvoiceAmount()),
		Commission:    moneyFrom(e.Commission()),
		Status:        e.Status().String(),
		CreatedAt:     e.CreatedAt(),
		PaidAt:        e.PaidAt(),
	}
}

type CommissionSummaryResponse struct {
	StaffID       kernel.UUID     `json:"staffId"`
	Currency      string          `json:"currency"`
	Tiers         []Tier          `json:"tiers"`
	Entries       []EntryResponse `json:"entries"`
	TotalEarned   Money           `json:"totalEarned"`
	PaidAmount    Money           `json:"paidAmount"`
	PendingAmount Money           `json:"pendingAmount"`
}

func commissionSummaryFrom(s queries.CommissionSummary) CommissionSummaryResponse {
	resp := CommissionSummaryResponse{
		StaffID:       s.StaffID,
		Currency:      s.Currency.Code(),
		Tiers:         make([]Tier, 0, len(s.Tiers)),
		Entries:       make([]EntryResponse, 0, len(s.Entries)),
		TotalEarned:   moneyFrom(s.TotalEarned),
		PaidAmount:    moneyFrom(s.PaidAmount),
		PendingAmount: moneyFrom(s.PendingAmount),
	}
	for _, t := range s.Tiers {
		resp.Tiers = append(resp.Tiers, tierFrom(t))
	}
	for _, e := range s.Entries {
		resp.Entries = append(resp.Entries, entryFrom(e))
	}
	return resp
}

type CommissionPlanResponse struct {
	StaffID  kernel.UUID `json:"staffId"`
	Currency string      `json:"currency"`
	Tiers    []Tier      `json:"tiers"`
}

func commissionPlanFrom(c *commission.StaffCommission) CommissionPlanResponse {
	resp := CommissionPlanResponse{
		StaffID:  c.StaffID(),
		Currency: c.Currency().Code(),
		Tiers:    make([]Tier, 0, len(c.Tiers())),
	}
	for _, t := range c.Tiers() {
		resp.Tiers = append(resp.Tiers, tierFrom(t))
	}
	return resp
}

// Salary and performance.

type SalaryRequest struct {
	Currency                  string     `json:"currency" validate:"required,len=3"`
	Base                      string     `json:"base" validate:"required,numeric"`
	UnderperformanceDeduction string     `json:"underperformanceDeduction" validate:"required,numeric"`
	UnderperformanceThreshold int        `json:"underperformanceThreshold" validate:"min=0,max=100"`
	RejectionFee              string     `json:"rejectionFee" validate:"required,numeric"`
	NextPaymentDate           *time.Time `json:"nextPaymentDate"`
}

func (r SalaryRequest) toDomain() (performance.SalaryTerms, error) {
	base, err := kernel.ParseMoney(r.Base, r.Currency)
	if err != nil {
		return performance.SalaryTerms{}, err
	}
	deduction, err := kernel.ParseMoney(r.UnderperformanceDeduction, r.Currency)
	if err != nil {
		return performance.SalaryTerms{}, err
	}
	fee, err := kernel.ParseMoney(r.RejectionFee, r.Currency)
	if err != nil {
		return performance.SalaryTerms{}, err
	}
	terms := performance.SalaryTerms{
		Base:                      base,
		UnderperformanceDeduction: deduction,
		UnderperformanceThreshold: r.UnderperformanceThreshold,
		RejectionFee:              fee,
	}
	if r.NextPaymentDate != nil {
		terms.NextPaymentDate = r.NextPaymentDate.UTC()
	}
	return terms, nil
}

type DeductionResponse struct {
	Period string `json:"period"`
	Amount Money  `json:"amount"`
}

type SalaryResponse struct {
	StaffID                   kernel.UUID         `json:"staffId"`
	Base                      Money               `json:"base"`
	UnderperformanceDeduction Money               `json:"underperformanceDeduction"`
	UnderperformanceThreshold int                 `json:"underperformanceThreshold"`
	RejectionFee              Money               `json:"rejectionFee"`
	NextPaymentDate           *time.Time          `json:"nextPaymentDate,omitempty"`
	TotalRejectionFees        Money               `json:"totalRejectionFees"`
	PendingDeductions         []DeductionResponse `json:"pendingDeductions"`
	NextPayment               Money               `json:"nextPayment"`
}

func salaryFrom(
	terms performance.SalaryTerms,
	fees kernel.Money,
	deductions []performance.Deduction,
	next kernel.Money,
) SalaryResponse {
	resp := SalaryResponse{
		Base:                      moneyFrom(terms.Base),
		UnderperformanceDeduction: moneyFrom(terms.UnderperformanceDeduction),
		UnderperformanceThreshold: terms.UnderperformanceThreshold,
		RejectionFee:              moneyFrom(terms.RejectionFee),
		TotalRejectionFees:        moneyFrom(fees),
		PendingDeductions:         make([]DeductionResponse, 0, len(deductions)),
		NextPayment:               moneyFrom(next),
	}
	if !terms.NextPaymentDate.IsZero() {
		d := terms.NextPaymentDate
		resp.NextPaymentDate = &d
	}
	for _, d := range deductions {
		resp.PendingDeductions = append(resp.PendingDeductions, DeductionResponse{
			Period: d.Period.String(),
			Amount: moneyFrom(d.Amount),
		})
	}
	return resp
}

func salaryEntityFrom(s *performance.Salary) SalaryResponse {
	resp := salaryFrom(s.Terms(), s.TotalRejectionFees(), s.PendingDeductions(), s.NextPayment())
	resp.StaffID = s.StaffID()
	return resp
}

type PerformanceEventRequest struct {
	Type    string `json:"type" validate:"required,oneof=early_completion rejection"`
	OrderID string `json:"orderId" validate:"omitempty,uuid"`
	Key     string `json:"key"`
}

type DeltaResponse struct {
	Key     string       `json:"key"`
	Type    string       `json:"type"`
	Points  int          `json:"points"`
	OrderID *kernel.UUID `json:"orderId,omitempty"`
	At      time.Time    `json:"at"`
}

type PerformanceResponse struct {
	StaffID          kernel.UUID     `json:"staffId"`
	CurrentScore     int             `json:"currentScore"`
	DisplayScore     int             `json:"displayScore"`
	TotalScore       int             `json:"totalScore"`
	Rejections       int             `json:"rejections"`
	EarlyCompletions int             `json:"earlyCompletions"`
	Deltas           []DeltaResponse `json:"deltas"`
	Salary           *SalaryResponse `json:"salary,omitempty"`
}

func deltasFrom(deltas []performance.Delta) []DeltaResponse {
	resp := make([]DeltaResponse, 0, len(deltas))
	for _, d := range deltas {
		resp = append(resp, DeltaResponse{
			Key:     d.Key(),
			Type:    d.EventType().String(),
			Points:  d.Points(),
			OrderID: d.OrderID(),
			At:      d.At(),
		})
	}
	return resp
}

func performanceFrom(v queries.PerformanceView) PerformanceResponse {
	resp := PerformanceResponse{
		StaffID:          v.StaffID,
		CurrentScore:     v.CurrentScore,
		DisplayScore:     v.DisplayScore,
		TotalScore:       v.TotalScore,
		Rejections:       v.Rejections,
		EarlyCompletions: v.EarlyCompletions,
		Deltas:           deltasFrom(v.Deltas),
	}
	if v.Salary != nil {
		s := salaryFrom(v.Salary.Terms, v.Salary.TotalRejectionFees, v.Salary.PendingDeductions, v.Salary.NextPayment)
		s.StaffID = v.StaffID
		resp.Salary = &s
	}
	return resp
}

func recordFrom(r *performance.Record) PerformanceResponse {
	return PerformanceResponse{
		StaffID:          r.StaffID(),
		CurrentScore:     r.CurrentScore(),
		DisplayScore:     performance.Clamp(r.CurrentScore()),
		TotalScore:       r.TotalScore(),
		Rejections:       r.Rejections(),
		EarlyCompletions: r.EarlyCompletions(),
		Deltas:           deltasFrom(r.Deltas()),
	}
}

type ReportRequest struct {
	Period string `json:"period" validate:"required"`
}

type ReportResponse struct {
	StaffID          kernel.UUID `json:"staffId"`
	Period           string      `json:"period"`
	TotalScore       int         `json:"totalScore"`
	ScoreTrend       int         `json:"scoreTrend"`
	Status           string      `json:"status"`
	Rejections       int         `json:"rejections"`
	EarlyCompletions int         `json:"earlyCompletions"`
	SalaryImpact     bool        `json:"salaryImpact"`
	DeductionAmount  Money       `json:"deductionAmount"`
	GeneratedAt      time.Time   `json:"generatedAt"`
}

func reportFrom(r *performance.MonthlyReport) ReportResponse {
	return ReportResponse{
		StaffID:          r.StaffID,
		Period:           r.Period.String(),
		TotalScore:       r.TotalScore,
		ScoreTrend:       r.ScoreTrend,
		Status:           r.Status.String(),
		Rejections:       r.Rejections,
		EarlyCompletions: r.EarlyCompletions,
		SalaryImpact:     r.SalaryImpact,
		DeductionAmount:  moneyFrom(r.DeductionAmount),
		GeneratedAt:      r.GeneratedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
