package photo

import (
	"context"
	"errors"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r repository) FindById(ctx context.Context, id uint) (*model.Photo, error) {
	var photo *model.Photo
	err := r.db.WithContext(ctx).First(&photo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("photo not found by id: %d", id)
	}
	return photo, err
}

func (r repository) FindByEvent(ctx context.Context, eventID uint) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at desc").
		Find(&photos).Error
	return photos, err
}
