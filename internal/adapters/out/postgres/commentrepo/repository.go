// Package commentrepo stores free-text comments attached to orders.
package commentrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   string    `gorm:"not null"`
	AuthorName string
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (CommentDTO) TableName() string {
	return "order_comments"
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Add(ctx context.Context, c *comment.Comment) error {
	if c == nil {
		return errs.NewValueIsRequiredError("comment")
	}

	dto := CommentDTO{
		ID:         c.ID().Bytes(),
		OrderID:    c.OrderID().Bytes(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Body:       c.Body(),
		CreatedAt:  c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("comment id", err)
		}
		return err
	}
	return nil
}

// ListByOrder returns the comments of an order, oldest first.
func (r *GormCommentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*comment.Comment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CommentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	comments := make([]*comment.Comment, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		c, err := comment.NewComment(id, orderID, dto.AuthorID, dto.AuthorName, dto.Body, dto.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
