package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/filmsim"
	"github.com/snap-party/snapparty/pkg/model"
)

// State is the camera's current mode. Transitions are serialized; at most one
// capture or upload is in flight per session.
type State string

const (
	// StateIdle shows the viewfinder.
	StateIdle State = "idle"
	// StateCapturing renders the shot through the selected look.
	StateCapturing State = "capturing"
	// StatePreviewing shows the rendered shot for the keep-or-retake choice.
	StatePreviewing State = "previewing"
	// StateUploading pushes the kept shot to the gallery.
	StateUploading State = "uploading"
)

// Capturer produces the raw image of one shot.
type Capturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Backend is the slice of the photo-sharing API the camera needs.
type Backend interface {
	UploadPhoto(ctx context.Context, eventID uint, fileName string, contentType string, image io.Reader) (*model.Photo, error)
	ConsumeShot(ctx context.Context, participantID uint) (*model.Participant, error)
}

// NewSession returns a camera session for one participant of one event. The
// shot allowance starts from the participant record and is reconciled with
// the backend on every kept shot.
func NewSession(logger *slog.Logger, backend Backend, capturer Capturer, participant *model.Participant) *Session {
	return &Session{
		logger:         logger,
		backend:        backend,
		capturer:       capturer,
		eventID:        participant.EventID,
		participantID:  participant.ID,
		shotsRemaining: participant.ShotsRemaining,
		simulation:     filmsim.Provia,
		state:          StateIdle,
	}
}

type Session struct {
	logger        *slog.Logger
	backend       Backend
	capturer      Capturer
	eventID       uint
	participantID uint

	mu             sync.Mutex
	state          State
	shotsRemaining int
	simulation     filmsim.Simulation
	preview        image.Image
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) ShotsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shotsRemaining
}

// SetSimulation selects the look for the next capture. The look of a shot
// already in preview is fixed.
func (s *Session) SetSimulation(simulation filmsim.Simulation) error {
	if _, err := filmsim.ParseSimulation(string(simulation)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulation = simulation
	return nil
}

func (s *Session) Simulation() filmsim.Simulation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.simulation
}

// Preview returns the rendered shot awaiting the keep-or-retake choice, or
// nil outside of the previewing state.
func (s *Session) Preview() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Capture takes a shot and renders it through the selected look. The shot
// allowance is untouched; only keeping the shot burns it.
func (s *Session) Capture(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return errdef.NewConflict("cannot capture while %s", state)
	}
	if s.shotsRemaining < 1 {
		s.mu.Unlock()
		return errdef.NewConflict("no shots remaining")
	}
	s.state = StateCapturing
	simulation := s.simulation
	s.mu.Unlock()

	raw, err := s.capturer.Capture(ctx)
	if err != nil {
		s.setState(StateIdle)
		return errdef.NewUnavailable("camera capture failed: %v", err)
	}

	rendered, err := filmsim.Apply(raw, simulation)
	if err != nil {
		s.setState(StateIdle)
		return err
	}

	s.mu.Lock()
	s.preview = rendered
	s.state = StatePreviewing
	s.mu.Unlock()
	return nil
}

// Retake discards the previewed shot and returns to the viewfinder. The shot
// allowance is untouched.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePreviewing {
		return errdef.NewConflict("nothing to retake while %s", s.state)
	}
	s.preview = nil
	s.state = StateIdle
	return nil
}

// Keep uploads the previewed shot to the gallery and burns one shot. The
// allowance is only decremented after the backend acknowledges the upload; a
// failed upload keeps the preview so the shot is not lost.
func (s *Session) Keep(ctx context.Context) (*model.Photo, error) {
	s.mu.Lock()
	if s.state != StatePreviewing {
		state := s.state
		s.mu.Unlock()
		return nil, errdef.NewConflict("nothing to keep while %s", state)
	}
	s.state = StateUploading
	preview := s.preview
	s.mu.Unlock()

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, preview, &jpeg.Options{Quality: 90}); err != nil {
		s.setState(StatePreviewing)
		return nil, err
	}

	fileName := fmt.Sprintf("%s.jpg", uuid.NewString())
	photo, err := s.backend.UploadPhoto(ctx, s.eventID, fileName, "image/jpeg", &encoded)
	if err != nil {
		s.setState(StatePreviewing)
		return nil, err
	}

	participant, err := s.backend.ConsumeShot(ctx, s.participantID)

	s.mu.Lock()
	s.preview = nil
	s.state = StateIdle
	if err == nil {
		s.shotsRemaining = participant.ShotsRemaining
	}
	s.mu.Unlock()

	if err != nil {
		// the photo is in the gallery either way
		s.logger.WarnContext(ctx, "Photo uploaded but the shot could not be burned", "photoId", photo.ID, "error", err)
		return photo, err
	}

	return photo, nil
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
