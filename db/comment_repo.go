package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

type CommentRepository interface {
	SaveComment(comment *models.Comment) error
	GetCommentByID(commentID uint) (*models.Comment, error)
	GetCommentsByReport(reportID uuid.UUID, page int) ([]models.Comment, error)
	UpdateComment(commentID uint, userID uint, text string) (*models.Comment, error)
	DeleteComment(commentID uint, userID uint) error
}

type commentRepo struct {
	DB *gorm.DB
}

func NewCommentRepo(db *GormDB) CommentRepository {
	return &commentRepo{db.DB}
}

func (c *commentRepo) SaveComment(comment *models.Comment) error {
	if err := c.DB.Create(comment).Error; err != nil {
		return errors.Wrap(err, "saving comment")
	}
	return nil
}

func (c *commentRepo) GetCommentByID(commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := c.DB.Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *commentRepo) GetCommentsByReport(reportID uuid.UUID, page int) ([]models.Comment, error) {
	var comments []models.Comment
	offset := pageOffset(page)
	err := c.DB.Where("report_id = ?", reportID).
		Order("created_at ASC").Offset(offset).Limit(DefaultPageSize).Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing comments")
	}
	return comments, nil
}

// UpdateComment edits the comment in a single statement whose WHERE clause
// carries the ownership predicate, so a non-author can never match the row.
func (c *commentRepo) UpdateComment(commentID uint, userID uint, text string) (*models.Comment, error) {
	result := c.DB.Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", commentID, userID).
		Updates(map[string]interface{}{"comment": text, "is_edited": true})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var comment models.Comment
	if err := c.DB.Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment hard-deletes with the same ownership predicate.
func (c *commentRepo) DeleteComment(commentID uint, userID uint) error {
	result := c.DB.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
