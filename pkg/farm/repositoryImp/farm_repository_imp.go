package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"farms/entities"
	"farms/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) FindByID(id string) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.Where("farm_id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) FindAll() ([]entities.Farm, error) {
	var fs []entities.Farm
	if err := r.db.Find(&fs).Error; err != nil {
		return nil, err
	}
	return fs, nil
}

func (r *farmRepo) Save(f *entities.Farm) error { return r.db.Save(f).Error }
