package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/comment"
)

type AddCommentCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewAddCommentCommandHandler(uowFactory UoWFactory, clock Clock) AddCommentCommandHandler {
	return AddCommentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AddCommentCommandHandler) Handle(ctx context.Context, cmd AddCommentCommand) (*comment.Comment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return nil, err
	}

	c, err := comment.NewComment(
		cmd.CommentID(), cmd.OrderID(), cmd.AuthorID(), cmd.AuthorName(), cmd.Body(), h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.CommentRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
