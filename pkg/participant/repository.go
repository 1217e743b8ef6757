package participant

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

func (r repository) Create(ctx context.Context, participant *model.Participant) error {
	err := r.db.WithContext(ctx).Create(participant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("participant already exists for event %d and user %q", participant.EventID, participant.UserID)
	}
	return err
}

func (r repository) FindById(ctx context.Context, id uint) (*model.Participant, error) {
	var participant *model.Participant
	err := r.db.WithContext(ctx).First(&participant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("participant not found by id: %d", id)
	}
	return participant, err
}

func (r repository) FindByEventAndUser(ctx context.Context, eventID uint, userID string) (*model.Participant, error) {
	var participant *model.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("participant not found by event: %d and user: %q", eventID, userID)
	}
	return participant, err
}

func (r repository) FindByEvent(ctx context.Context, eventID uint) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&participants).Error
	return participants, err
}

func (r repository) UpdateShots(ctx context.Context, id uint, shotsRemaining int) error {
	db := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("id = ?", id).
		Update("shots_remaining", shotsRemaining)
	if db.Error != nil {
		return db.Error
	}

	if db.RowsAffected < 1 {
		return errdef.NewNotFound("participant not found by id: %d", id)
	}

	return nil
}

// ConsumeShot decrements the allowance by one in a single conditional update
// so concurrent sessions cannot overwrite each other's decrement and the
// value can never drop below zero.
func (r repository) ConsumeShot(ctx context.Context, id uint) (*model.Participant, error) {
	var participant *model.Participant

	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.
			Model(&model.Participant{}).
			Where("id = ? AND shots_remaining > 0", id).
			Update("shots_remaining", gorm.Expr("shots_remaining - 1"))
		if db.Error != nil {
			return db.Error
		}

		if db.RowsAffected < 1 {
			var p *model.Participant
			err := tx.First(&p, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errdef.NewNotFound("participant not found by id: %d", id)
			}
			if err != nil {
				return err
			}
			return errdef.NewConflict("participant %d has no shots remaining", id)
		}

		return tx.First(&participant, id).Error
	})

	return participant, errTx
}
