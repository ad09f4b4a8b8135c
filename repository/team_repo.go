package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
)

type TeamRepo interface {
	WithTx(tx *gorm.DB) TeamRepo
	Create(team *models.Team) error
	GetByID(id uint) (*models.Team, error)
	GetByName(name string) (*models.Team, error)
	GetAll() ([]models.Team, error)
	GetByMemberUsername(username string) ([]models.Team, error)
	Save(team *models.Team) error
	AddMember(team *models.Team, user *models.User) error
	RemoveMember(team *models.Team, user *models.User) error
	Delete(id uint) error
}

type teamRepoGorm struct {
	db *gorm.DB
}

var _ TeamRepo = (*teamRepoGorm)(nil)

func NewTeamRepoGorm(db *gorm.DB) *teamRepoGorm {
	return &teamRepoGorm{db: db}
}

func (r *teamRepoGorm) WithTx(tx *gorm.DB) TeamRepo {
	return &teamRepoGorm{db: tx}
}

func (r *teamRepoGorm) Create(team *models.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateTeamName
		}
		return err
	}
	return nil
}

func (r *teamRepoGorm) GetByID(id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.
		Preload("Captain.Profile").
		Preload("Members.Profile").
		First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// Team names are unique case-insensitively, so the lookup folds case too.
func (r *teamRepoGorm) GetByName(name string) (*models.Team, error) {
	var team models.Team
	err := r.db.
		Preload("Captain.Profile").
		Preload("Members.Profile").
		Where("LOWER(name) = LOWER(?)", name).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepoGorm) GetAll() ([]models.Team, error) {
	var teams []models.Team
	err := r.db.
		Preload("Captain.Profile").
		Preload("Members.Profile").
		Order("id").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepoGorm) GetByMemberUsername(username string) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("LOWER(users.username) = LOWER(?)", username).
		Preload("Captain.Profile").
		Preload("Members.Profile").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepoGorm) Save(team *models.Team) error {
	if err := r.db.Save(team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateTeamName
		}
		return err
	}
	return nil
}

func (r *teamRepoGorm) AddMember(team *models.Team, user *models.User) error {
	return r.db.Model(team).Association("Members").Append(user)
}

func (r *teamRepoGorm) RemoveMember(team *models.Team, user *models.User) error {
	return r.db.Model(team).Association("Members").Delete(user)
}

func (r *teamRepoGorm) Delete(id uint) error {
	return r.db.Select("Members").Delete(&models.Team{ID: id}).Error
}
