package event

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

func (r repository) Create(ctx context.Context, event *model.Event) error {
	err := r.db.WithContext(ctx).Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event with join code %q already exists", event.JoinCode)
	}
	return err
}

func (r repository) FindById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found by id: %d", id)
	}
	return event, err
}

func (r repository) FindByJoinCode(ctx context.Context, code string) (*model.Event, error) {
	var event *model.Event
	err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found by join code: %q", code)
	}
	return event, err
}
