package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/snap-party/snapparty/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(repository Repository) *service {
	return &service{repository}
}

type Repository interface {
	Create(ctx context.Context, event *model.Event) error
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindByJoinCode(ctx context.Context, code string) (*model.Event, error)
}

type service struct {
	repository Repository
}

// Create stores a new event. The join code is a random token generated here;
// its uniqueness is backed by a database index. Events are immutable once
// created and are never deleted by this system.
func (s service) Create(ctx context.Context, name string, createdBy string) (*model.Event, error) {
	event := &model.Event{
		Name:      name,
		CreatedBy: createdBy,
		JoinCode:  uuid.NewString(),
		Slug:      slug.Make(name),
	}

	err := s.repository.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.FindById(ctx, id)
}

func (s service) FindByJoinCode(ctx context.Context, code string) (*model.Event, error) {
	return s.repository.FindByJoinCode(ctx, code)
}
