package services

import (
	"strings"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

// SubscriptionService manages the newsletter opt-ins. Subscribing needs
// no account, so there is no principal on Subscribe/Unsubscribe.
type SubscriptionService struct {
	subs repository.SubscriptionRepo
}

func NewSubscriptionService(subs repository.SubscriptionRepo) *SubscriptionService {
	return &SubscriptionService{subs: subs}
}

func (s *SubscriptionService) Subscribe(email string) (*models.Subscription, error) {
	if !strings.Contains(email, "@") {
		return nil, models.ErrValidation
	}
	if _, err := s.subs.GetByEmail(email); err == nil {
		return nil, models.ErrDuplicateSubscription
	}
	sub := &models.Subscription{Email: email}
	if err := s.subs.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) Unsubscribe(email string) error {
	sub, err := s.subs.GetByEmail(email)
	if err != nil {
		return err
	}
	return s.subs.Delete(sub.ID)
}

func (s *SubscriptionService) GetAll(principal *models.User) ([]models.Subscription, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.subs.GetAll()
}
