package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

// NotificationService is the pull side of the fan-out: recipients list their
// notifications and mark them read. Only the owner can touch a notification.
type NotificationService interface {
	ListNotifications(userID uint, page int) ([]models.Notification, error)
	MarkRead(userID uint, notificationID uint) error
	DeleteNotification(userID uint, notificationID uint) error
}

type notificationService struct {
	Config           *config.Config
	notificationRepo db.NotificationRepository
}

func NewNotificationService(notificationRepo db.NotificationRepository, conf *config.Config) NotificationService {
	return &notificationService{
		Config:           conf,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) ListNotifications(userID uint, page int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetNotificationsByUser(userID, page)
	if err != nil {
		log.Printf("ListNotifications: %v", err)
		return nil, errs.ErrInternalServerError
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(userID uint, notificationID uint) error {
	if err := s.notificationRepo.MarkNotificationRead(notificationID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.ErrNotFound
		}
		log.Printf("MarkRead: %v", err)
		return errs.ErrInternalServerError
	}
	return nil
}

func (s *notificationService) DeleteNotification(userID uint, notificationID uint) error {
	if err := s.notificationRepo.DeleteNotification(notificationID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.ErrNotFound
		}
		log.Printf("DeleteNotification: %v", err)
		return errs.ErrInternalServerError
	}
	return nil
}
