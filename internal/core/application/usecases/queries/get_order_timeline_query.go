package queries

import (
	"context"
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

type GetOrderTimelineQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTimelineQuery(orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	return GetOrderTimelineQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

func (q GetOrderTimelineQuery) OrderID() kernel.UUID { return q.orderID }

type HistoryItem struct {
	ID             kernel.UUID
	PreviousStatus order.Status
	NewStatus      order.Status
	Action         order.Action
	ActorID        string
	ActorName      string
	Reason         string
	Notes          string
	CreatedAt      time.Time
}

type CommentItem struct {
	ID         kernel.UUID
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// OrderTimeline keeps the two streams apart: the immutable history and the
// comments. Both are oldest first.
type OrderTimeline struct {
	Order    OrderView
	History  []HistoryItem
	Comments []CommentItem
}

type GetOrderTimelineQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetOrderTimelineQueryHandler(uowFactory UoWFactory) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderTimelineQueryHandler) Handle(ctx context.Context, q GetOrderTimelineQuery) (OrderTimeline, error) {
	if err := q.Validate(); err != nil {
		return OrderTimeline{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return OrderTimeline{}, err
	}
	defer done()

	o, err := uow.OrderRepository().Get(ctx, q.OrderID())
	if err != nil {
		return OrderTimeline{}, err
	}
	comments, err := uow.CommentRepository().ListByOrder(ctx, q.OrderID())
	if err != nil {
		return OrderTimeline{}, err
	}

	timeline := OrderTimeline{
		Order:    NewOrderView(o),
		History:  make([]HistoryItem, 0, o.HistoryLen()),
		Comments: make([]CommentItem, 0, len(comments)),
	}
	for e := range o.History() {
		timeline.History = append(timeline.History, HistoryItem{
			ID:             e.ID(),
			PreviousStatus: e.PreviousStatus(),
			NewStatus:      e.NewStatus(),
			Action:         e.Action(),
			ActorID:        e.Actor().ID,
			ActorName:      e.Actor().Name,
			Reason:         e.Reason(),
			Notes:          e.Notes(),
			CreatedAt:      e.CreatedAt(),
		})
	}
	for _, c := range comments {
		timeline.Comments = append(timeline.Comments, CommentItem{
			ID:         c.ID(),
			AuthorID:   c.AuthorID(),
			AuthorName: c.AuthorName(),
			Body:       c.Body(),
			CreatedAt:  c.CreatedAt(),
		})
	}
	slices.SortStableFunc(timeline.Comments, func(a, b CommentItem) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return timeline, nil
}
