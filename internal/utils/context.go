package utils

import "context"

type contextKey string

const (
	DeviceIDKey contextKey = "device_id"
	StaffIDKey  contextKey = "staff_id"
)

// SetDeviceContext stores the authenticated kiosk device (called by middleware)
func SetDeviceContext(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, DeviceIDKey, deviceID)
}

// GetDeviceIDFromContext retrieves the device id safely
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(DeviceIDKey).(string)
	return id, ok && id != ""
}

// SetStaffContext records the cashier operating the terminal, when the token carries one.
func SetStaffContext(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, StaffIDKey, staffID)
}

func GetStaffIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(StaffIDKey).(string)
	return id
}
