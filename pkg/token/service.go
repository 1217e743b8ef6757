package token

import (
	"log/slog"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
	"github.com/snap-party/snapparty/pkg/token/helper"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, secretKey string, expirationSeconds int) *tokenService {
	return &tokenService{
		logger:            logger,
		secretKey:         secretKey,
		expirationSeconds: expirationSeconds,
	}
}

type tokenService struct {
	logger            *slog.Logger
	secretKey         string
	expirationSeconds int
}

// Session is issued when a device registers. There are no accounts and no
// refresh flow; an expired session is replaced by registering again.
type Session struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   uint   `json:"expiresIn"`
}

func (t tokenService) IssueSession(device model.Device) (*Session, error) {
	accessToken, err := helper.GenerateSessionToken(device, t.secretKey, t.expirationSeconds)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   uint(t.expirationSeconds),
	}, nil
}

func (t tokenService) ValidateSessionToken(tokenString string) (model.Device, error) {
	device, err := helper.ValidateSessionToken(tokenString, t.secretKey)
	if err != nil {
		t.logger.Warn("Unable to validate session token", "error", err)
		return model.Device{}, errdef.NewUnauthorized("unable to verify session token")
	}
	return device, nil
}
