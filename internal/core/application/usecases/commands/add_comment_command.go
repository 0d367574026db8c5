package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAddCommentCommandIsNotConstructed = errors.New(
	"AddCommentCommand must be created via NewAddCommentCommand constructor",
)

// AddCommentCommand attaches a free-form note to an order. Comments live next
// to the history ledger and never change the order.
type AddCommentCommand struct {
	commentID  kernel.UUID
	orderID    kernel.UUID
	authorID   string
	authorName string
	body       string

	guard guard.ConstructorGuard
}

func NewAddCommentCommand(
	commentID, orderID kernel.UUID,
	authorID, authorName, body string,
) (AddCommentCommand, error) {
	var authorErr, bodyErr error
	if strings.TrimSpace(authorID) == "" {
		authorErr = comment.ErrAuthorIsRequired
	}
	if strings.TrimSpace(body) == "" {
		bodyErr = comment.ErrBodyIsRequired
	}
	if err := errors.Join(commentID.Validate(), orderID.Validate(), authorErr, bodyErr); err != nil {
		return AddCommentCommand{}, err
	}

	return AddCommentCommand{
		commentID:  commentID,
		orderID:    orderID,
		authorID:   authorID,
		authorName: authorName,
		body:       body,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddCommentCommand) Validate() error {
	return c.guard.Validate(ErrAddCommentCommandIsNotConstructed)
}

func (c AddCommentCommand) CommentID() kernel.UUID { return c.commentID }
func (c AddCommentCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AddCommentCommand) AuthorID() string       { return c.authorID }
func (c AddCommentCommand) AuthorName() string     { return c.authorName }
func (c AddCommentCommand) Body() string           { return c.body }
