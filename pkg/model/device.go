package model

import "context"

// Device identifies an installation of the app. There is no account behind
// it; the id is generated once on the device and exchanged for a session
// token.
type Device struct {
	ID string `json:"id"`
}

type contextKey int

var deviceKey contextKey

// NewContextWithDevice returns a new context carrying the device.
func NewContextWithDevice(ctx context.Context, device Device) context.Context {
	return context.WithValue(ctx, deviceKey, device)
}

// GetDeviceFromContext returns the device stored in ctx, if any. Public
// routes do not have one.
func GetDeviceFromContext(ctx context.Context) (Device, bool) {
	device, ok := ctx.Value(deviceKey).(Device)
	return device, ok
}
