package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
)

type AuthTokenRepo interface {
	WithTx(tx *gorm.DB) AuthTokenRepo
	Create(token *models.AuthenticationToken) error
	GetByToken(token string) (*models.AuthenticationToken, error)
	Save(token *models.AuthenticationToken) error
	DeleteExpiredBefore(t time.Time) (int64, error)
}

type InviteRepo interface {
	WithTx(tx *gorm.DB) InviteRepo
	Create(invite *models.TeamInviteToken) error
	GetByToken(token string) (*models.TeamInviteToken, error)
	FindValidByUserAndTeam(userID, teamID uint) ([]models.TeamInviteToken, error)
	FindValidByTeam(teamID uint) ([]models.TeamInviteToken, error)
	FindValidByUsername(username string) ([]models.TeamInviteToken, error)
	Save(invite *models.TeamInviteToken) error
}

type authTokenRepoGorm struct {
	db *gorm.DB
}

var _ AuthTokenRepo = (*authTokenRepoGorm)(nil)

func NewAuthTokenRepoGorm(db *gorm.DB) *authTokenRepoGorm {
	return &authTokenRepoGorm{db: db}
}

func (r *authTokenRepoGorm) WithTx(tx *gorm.DB) AuthTokenRepo {
	return &authTokenRepoGorm{db: tx}
}

func (r *authTokenRepoGorm) Create(token *models.AuthenticationToken) error {
	return r.db.Create(token).Error
}

func (r *authTokenRepoGorm) GetByToken(token string) (*models.AuthenticationToken, error) {
	var t models.AuthenticationToken
	err := r.db.Preload("User.Profile").Where("token = ?", token).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *authTokenRepoGorm) Save(token *models.AuthenticationToken) error {
	return r.db.Save(token).Error
}

// DeleteExpiredBefore drops tokens whose expiry passed before t. Expiry
// is already enforced at lookup time; this just keeps the table small.
func (r *authTokenRepoGorm) DeleteExpiredBefore(t time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", t).Delete(&models.AuthenticationToken{})
	return res.RowsAffected, res.Error
}

type inviteRepoGorm struct {
	db *gorm.DB
}

var _ InviteRepo = (*inviteRepoGorm)(nil)

func NewInviteRepoGorm(db *gorm.DB) *inviteRepoGorm {
	return &inviteRepoGorm{db: db}
}

func (r *inviteRepoGorm) WithTx(tx *gorm.DB) InviteRepo {
	return &inviteRepoGorm{db: tx}
}

func (r *inviteRepoGorm) Create(invite *models.TeamInviteToken) error {
	return r.db.Create(invite).Error
}

func (r *inviteRepoGorm) GetByToken(token string) (*models.TeamInviteToken, error) {
	var invite models.TeamInviteToken
	err := r.db.Preload("User").Preload("Team").Where("token = ?", token).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepoGorm) FindValidByUserAndTeam(userID, teamID uint) ([]models.TeamInviteToken, error) {
	var invites []models.TeamInviteToken
	err := r.db.
		Where("user_id = ? AND team_id = ? AND valid = ?", userID, teamID, true).
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepoGorm) FindValidByTeam(teamID uint) ([]models.TeamInviteToken, error) {
	var invites []models.TeamInviteToken
	err := r.db.
		Preload("User.Profile").Preload("Team").
		Where("team_id = ? AND valid = ?", teamID, true).
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepoGorm) FindValidByUsername(username string) ([]models.TeamInviteToken, error) {
	var invites []models.TeamInviteToken
	err := r.db.
		Preload("User.Profile").Preload("Team").
		Joins("JOIN users ON users.id = team_invite_tokens.user_id").
		Where("LOWER(users.username) = LOWER(?) AND team_invite_tokens.valid = ?", username, true).
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepoGorm) Save(invite *models.TeamInviteToken) error {
	return r.db.Save(invite).Error
}
