package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

type NotificationRepository interface {
	SaveNotification(notification *models.Notification) error
	GetNotificationsByUser(userID uint, page int) ([]models.Notification, error)
	MarkNotificationRead(notificationID uint, userID uint) error
	DeleteNotification(notificationID uint, userID uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) SaveNotification(notification *models.Notification) error {
	if err := n.DB.Create(notification).Error; err != nil {
		return errors.Wrap(err, "saving notification")
	}
	return nil
}

func (n *notificationRepo) GetNotificationsByUser(userID uint, page int) ([]models.Notification, error) {
	var notifications []models.Notification
	offset := pageOffset(page)
	err := n.DB.Where("user_id = ?", userID).
		Order("sent_at DESC").Offset(offset).Limit(DefaultPageSize).Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing notifications")
	}
	return notifications, nil
}

// MarkNotificationRead carries the recipient in the predicate; only the owner
// can flip the flag.
func (n *notificationRepo) MarkNotificationRead(notificationID uint, userID uint) error {
	result := n.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (n *notificationRepo) DeleteNotification(notificationID uint, userID uint) error {
	result := n.DB.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
