package participant

import (
	"context"
	"log/slog"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, eventService eventService, repository Repository) *service {
	return &service{
		logger:       logger,
		eventService: eventService,
		repository:   repository,
	}
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type Repository interface {
	Create(ctx context.Context, participant *model.Participant) error
	FindById(ctx context.Context, id uint) (*model.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID uint, userID string) (*model.Participant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]model.Participant, error)
	UpdateShots(ctx context.Context, id uint, shotsRemaining int) error
	ConsumeShot(ctx context.Context, id uint) (*model.Participant, error)
}

type service struct {
	logger       *slog.Logger
	eventService eventService
	repository   Repository
}

// Join is idempotent. Joining an event the device is already part of returns
// the existing record unchanged and never resets the shot allowance.
func (s service) Join(ctx context.Context, eventID uint, userID string, userName string) (*model.Participant, error) {
	if _, err := s.eventService.FindById(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.repository.FindByEventAndUser(ctx, eventID, userID)
	if err == nil {
		return existing, nil
	}
	if !errdef.IsNotFound(err) {
		return nil, err
	}

	participant := &model.Participant{
		EventID:        eventID,
		UserID:         userID,
		UserName:       userName,
		ShotsRemaining: model.MaxShots,
	}

	err = s.repository.Create(ctx, participant)
	if errdef.IsDuplicated(err) {
		// lost a race against another join from the same device
		return s.repository.FindByEventAndUser(ctx, eventID, userID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Participant joined", "event", eventID, "userName", userName)

	return participant, nil
}

func (s service) FindById(ctx context.Context, id uint) (*model.Participant, error) {
	return s.repository.FindById(ctx, id)
}

func (s service) FindByEventAndUser(ctx context.Context, eventID uint, userID string) (*model.Participant, error) {
	return s.repository.FindByEventAndUser(ctx, eventID, userID)
}

func (s service) FindByEvent(ctx context.Context, eventID uint) ([]model.Participant, error) {
	return s.repository.FindByEvent(ctx, eventID)
}

// UpdateShots overwrites the allowance with a caller-computed value. It exists
// for compatibility with clients that compute the decrement themselves;
// ConsumeShot is the safe path.
func (s service) UpdateShots(ctx context.Context, id uint, userID string, shotsRemaining int) error {
	participant, err := s.repository.FindById(ctx, id)
	if err != nil {
		return err
	}

	if participant.UserID != userID {
		return errdef.NewUnauthorized("participant %d does not belong to this device", id)
	}

	if shotsRemaining < 0 || shotsRemaining > model.MaxShots {
		return errdef.NewBadRequest("shotsRemaining must be between 0 and %d", model.MaxShots)
	}

	return s.repository.UpdateShots(ctx, id, shotsRemaining)
}

// ConsumeShot burns exactly one shot. It reports errdef.Conflict once the
// allowance is exhausted.
func (s service) ConsumeShot(ctx context.Context, id uint, userID string) (*model.Participant, error) {
	participant, err := s.repository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	if participant.UserID != userID {
		return nil, errdef.NewUnauthorized("participant %d does not belong to this device", id)
	}

	return s.repository.ConsumeShot(ctx, id)
}
