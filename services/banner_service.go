package services

import (
	"strings"
	"time"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

type BannerInput struct {
	Text      string
	StartDate time.Time
	EndDate   time.Time
}

type BannerService struct {
	banners repository.BannerRepo
	now     func() time.Time
}

func NewBannerService(banners repository.BannerRepo) *BannerService {
	return &BannerService{banners: banners, now: time.Now}
}

// Current returns the banner active today, or ErrBannerNotFound when none
// is scheduled.
func (s *BannerService) Current() (*models.Banner, error) {
	return s.banners.GetActiveAt(s.now())
}

func (s *BannerService) GetAll(principal *models.User) ([]models.Banner, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.banners.GetAll()
}

func (s *BannerService) validate(input BannerInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return models.ErrValidation
	}
	if input.EndDate.Before(input.StartDate) {
		return models.ErrValidation
	}
	return nil
}

func (s *BannerService) Create(principal *models.User, input BannerInput) (*models.Banner, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	banner := &models.Banner{
		Text:      input.Text,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.banners.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Update(principal *models.User, bannerID uint, input BannerInput) (*models.Banner, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	banner, err := s.banners.GetByID(bannerID)
	if err != nil {
		return nil, err
	}
	banner.Text = input.Text
	banner.StartDate = input.StartDate
	banner.EndDate = input.EndDate
	if err := s.banners.Save(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Delete(principal *models.User, bannerID uint) error {
	if !IsAdmin(principal) {
		return models.ErrForbidden
	}
	if _, err := s.banners.GetByID(bannerID); err != nil {
		return err
	}
	return s.banners.Delete(bannerID)
}
