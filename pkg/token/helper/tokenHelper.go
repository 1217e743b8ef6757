package helper

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/snap-party/snapparty/pkg/model"
)

const deviceIDClaim = "deviceId"

// GenerateSessionToken signs an anonymous session token for the device. The
// device id inside the validated token is the only user identity the system
// carries.
func GenerateSessionToken(device model.Device, secretKey string, expirationInSeconds int) (string, error) {
	currentTime := time.Now()
	tokenExpiration := currentTime.Add(time.Duration(expirationInSeconds) * time.Second)

	token := jwt.New()

	err := token.Set(deviceIDClaim, device.ID)
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.JwtIDKey, uuid.NewString())
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.IssuedAtKey, currentTime.Unix())
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.ExpirationKey, tokenExpiration.Unix())
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secretKey)))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

// ValidateSessionToken verifies the signature and expiration and returns the
// device the token was issued to.
func ValidateSessionToken(tokenString string, secretKey string) (model.Device, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secretKey)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return model.Device{}, err
	}

	deviceID, ok := token.Get(deviceIDClaim)
	if !ok {
		return model.Device{}, errors.New("device id not found in claims")
	}

	id, ok := deviceID.(string)
	if !ok || id == "" {
		return model.Device{}, errors.New("failed to parse device id claim")
	}

	return model.Device{ID: id}, nil
}
