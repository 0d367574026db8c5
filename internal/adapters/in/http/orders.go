package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	id, err := parseID("id", req.ID, true)
	if err != nil {
		return s.fail(c, err)
	}
	productID, err := parseID("productId", req.ProductID, false)
	if err != nil {
		return s.fail(c, err)
	}
	salesID, err := parseOptionalID("salesId", req.SalesID)
	if err != nil {
		return s.fail(c, err)
	}
	amount, err := req.Amount.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(id, req.Number, productID, amount, req.Countries, salesID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderFrom(queries.NewOrderView(o)))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFrom(view))
}

// AssignOrderStaff handles POST /api/v1/orders/{orderId}/assignments.
func (s *Server) AssignOrderStaff(c echo.Context) error {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req AssignmentRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	party, ok := order.ParseParty(req.Party)
	if !ok {
		return s.fail(c, errs.NewValueIsInvalidError("party"))
	}
	staffID, err := parseID("staffId", req.StaffID, false)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignOrderStaffCommand(id, party, staffID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.AssignOrderStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFrom(queries.NewOrderView(o)))
}

// transitionInput decodes the order id and actor shared by every transition.
func transitionInput(c echo.Context) (kernel.UUID, order.Actor, TransitionRequest, error) {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return kernel.UUID{}, order.Actor{}, TransitionRequest{}, err
	}
	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return kernel.UUID{}, order.Actor{}, TransitionRequest{}, err
	}
	actor, err := order.NewActor(req.ActorID, req.ActorName)
	if err != nil {
		return kernel.UUID{}, order.Actor{}, TransitionRequest{}, err
	}
	return id, actor, req, nil
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	id, actor, req, err := transitionInput(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAcceptOrderCommand(id, actor, req.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFrom(queries.NewOrderView(o)))
}

// RejectOrder handles POST /api/v1/orders/{orderId}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	id, actor, req, err := transitionInput(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRejectOrderCommand(id, actor, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.RejectOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFrom(queries.NewOrderView(o)))
}

// ResubmitOrder handles POST /api/v1/orders/{orderId}/resubmit.
func (s *Server) ResubmitOrder(c echo.Context) error {
	id, actor, req, err := transitionInput(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResubmitOrderCommand(id, actor, req.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.ResubmitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFrom(queries.NewOrderView(o)))
}

// GetDeadlineStatus handles GET /api/v1/orders/{orderId}/deadline. The
// optional now parameter evaluates the deadline at another instant.
func (s *Server) GetDeadlineStatus(c echo.Context) error {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	now, err := s.instant(c.QueryParam("now"))
	if err != nil {
		return s.fail(c, err)
	}

	q, err := queries.NewGetDeadlineStatusQuery(id, now)
	if err != nil {
		return s.fail(c, err)
	}
	status, err := s.handlers.GetDeadlineStatus.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, deadlineFrom(status))
}

// ListActiveDeadlines handles GET /api/v1/deadlines?state=overdue&state=approaching.
func (s *Server) ListActiveDeadlines(c echo.Context) error {
	var states []deadline.State
	for _, raw := range c.QueryParams()["state"] {
		st, ok := parseState(raw)
		if !ok {
			return s.fail(c, errs.NewValueIsInvalidError("state"))
		}
		states = append(states, st)
	}

	q, err := queries.NewListActiveDeadlinesQuery(s.clock.Now(), states...)
	if err != nil {
		return s.fail(c, err)
	}
	statuses, err := s.handlers.ListActiveDeadlines.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]DeadlineResponse, 0, len(statuses))
	for _, st := range statuses {
		resp = append(resp, deadlineFrom(st))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrderTimeline handles GET /api/v1/orders/{orderId}/timeline.
func (s *Server) GetOrderTimeline(c echo.Context) error {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetOrderTimelineQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	timeline, err := s.handlers.GetOrderTimeline.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, timelineFrom(timeline))
}

// AddComment handles POST /api/v1/orders/{orderId}/comments.
func (s *Server) AddComment(c echo.Context) error {
	id, err := parseID("orderId", c.Param("orderId"), false)
	if err != nil {
		return s.fail(c, err)
	}
	var req NewCommentRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddCommentCommand(kernel.NewUUID(), id, req.AuthorID, req.AuthorName, req.Body)
	if err != nil {
		return s.fail(c, err)
	}
	cm, err := s.handlers.AddComment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, commentFrom(cm))
}

func (s *Server) instant(raw string) (time.Time, error) {
	if raw == "" {
		return s.clock.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("now", err)
	}
	return t.UTC(), nil
}

func parseState(raw string) (deadline.State, bool) {
	for _, st := range []deadline.State{deadline.OnTrack, deadline.Approaching, deadline.Overdue} {
		if st.String() == raw {
			return st, true
		}
	}
	return 0, false
}
