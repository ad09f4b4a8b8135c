package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
)

type SubscriptionRepo interface {
	Create(sub *models.Subscription) error
	GetByEmail(email string) (*models.Subscription, error)
	GetAll() ([]models.Subscription, error)
	Delete(id uint) error
}

type BannerRepo interface {
	Create(banner *models.Banner) error
	GetByID(id uint) (*models.Banner, error)
	GetActiveAt(t time.Time) (*models.Banner, error)
	GetAll() ([]models.Banner, error)
	Save(banner *models.Banner) error
	Delete(id uint) error
}

type RFIDRepo interface {
	Create(link *models.RFIDLink) error
	GetByRFID(rfid string) (*models.RFIDLink, error)
	GetByTicketID(ticketID uint) (*models.RFIDLink, error)
	GetAll() ([]models.RFIDLink, error)
	Delete(id uint) error
}

type subscriptionRepoGorm struct {
	db *gorm.DB
}

var _ SubscriptionRepo = (*subscriptionRepoGorm)(nil)

func NewSubscriptionRepoGorm(db *gorm.DB) *subscriptionRepoGorm {
	return &subscriptionRepoGorm{db: db}
}

func (r *subscriptionRepoGorm) Create(sub *models.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateSubscription
		}
		return err
	}
	return nil
}

func (r *subscriptionRepoGorm) GetByEmail(email string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepoGorm) GetAll() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.Order("id").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepoGorm) Delete(id uint) error {
	return r.db.Delete(&models.Subscription{}, id).Error
}

type bannerRepoGorm struct {
	db *gorm.DB
}

var _ BannerRepo = (*bannerRepoGorm)(nil)

func NewBannerRepoGorm(db *gorm.DB) *bannerRepoGorm {
	return &bannerRepoGorm{db: db}
}

func (r *bannerRepoGorm) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

func (r *bannerRepoGorm) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.First(&banner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepoGorm) GetActiveAt(t time.Time) (*models.Banner, error) {
	var banner models.Banner
	day := t.Format("2006-01-02")
	err := r.db.Where("start_date <= ? AND end_date >= ?", day, day).First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepoGorm) GetAll() ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.Order("start_date").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *bannerRepoGorm) Save(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

func (r *bannerRepoGorm) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}

type rfidRepoGorm struct {
	db *gorm.DB
}

var _ RFIDRepo = (*rfidRepoGorm)(nil)

func NewRFIDRepoGorm(db *gorm.DB) *rfidRepoGorm {
	return &rfidRepoGorm{db: db}
}

func (r *rfidRepoGorm) Create(link *models.RFIDLink) error {
	if err := r.db.Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateRFIDLink
		}
		return err
	}
	return nil
}

func (r *rfidRepoGorm) GetByRFID(rfid string) (*models.RFIDLink, error) {
	var link models.RFIDLink
	err := r.db.Where("rfid = ?", rfid).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRFIDLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *rfidRepoGorm) GetByTicketID(ticketID uint) (*models.RFIDLink, error) {
	var link models.RFIDLink
	err := r.db.Where("ticket_id = ?", ticketID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRFIDLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *rfidRepoGorm) GetAll() ([]models.RFIDLink, error) {
	var links []models.RFIDLink
	if err := r.db.Order("id").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *rfidRepoGorm) Delete(id uint) error {
	return r.db.Delete(&models.RFIDLink{}, id).Error
}
