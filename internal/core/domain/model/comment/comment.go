// Package comment holds free-form notes attached to an order. Comments live
// apart from the order history: they can be added at any stage and never
// affect the workflow.
package comment

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxBodyLength is the longest comment accepted, in characters.
const MaxBodyLength = 4000

var (
	ErrBodyIsRequired   = errs.NewValueIsRequiredError("body")
	ErrAuthorIsRequired = errs.NewValueIsRequiredError("author id")
)

type Comment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	authorID   string
	authorName string
	body       string
	createdAt  time.Time
}

func NewComment(id, orderID kernel.UUID, authorID, authorName, body string, createdAt time.Time) (*Comment, error) {
	authorID = strings.TrimSpace(authorID)
	body = strings.TrimSpace(body)

	var authorErr, bodyErr error
	if authorID == "" {
		authorErr = ErrAuthorIsRequired
	}
	switch n := utf8.RuneCountInString(body); {
	case n == 0:
		bodyErr = ErrBodyIsRequired
	case n > MaxBodyLength:
		bodyErr = errs.NewValueIsOutOfRangeError("body length", n, 1, MaxBodyLength)
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), authorErr, bodyErr); err != nil {
		return nil, err
	}

	return &Comment{
		id:         id,
		orderID:    orderID,
		authorID:   authorID,
		authorName: strings.TrimSpace(authorName),
		body:       body,
		createdAt:  createdAt.UTC(),
	}, nil
}

func (c *Comment) ID() kernel.UUID      { return c.id }
func (c *Comment) OrderID() kernel.UUID { return c.orderID }
func (c *Comment) AuthorID() string     { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Body() string         { return c.body }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
