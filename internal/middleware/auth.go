package middleware

import (
	"net/http"
	"strings"

	"teahouse-kiosk/internal/auth"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/utils"

	"go.uber.org/zap"
)

const DeviceIDHeader = "X-Device-ID"

// DeviceAuth identifies the kiosk behind a request. With a secret configured
// only a verified device token names the device, and a bare X-Device-ID
// header is refused. Without a secret the header is trusted as is.
func DeviceAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			deviceID := ""
			header := strings.TrimSpace(r.Header.Get(DeviceIDHeader))

			if secret != "" {
				tokenStr := auth.ExtractDeviceToken(r)
				if tokenStr == "" && header != "" {
					logger.FromCtx(ctx).Warn("device header without token", zap.String("device_id", header))
					utils.WriteJSONError(w, "device token required", http.StatusUnauthorized)
					return
				}
				if tokenStr != "" {
					claims, err := auth.ParseDeviceToken(secret, tokenStr)
					if err != nil {
						logger.FromCtx(ctx).Warn("rejected device token", zap.Error(err))
						utils.WriteJSONError(w, "invalid device token", http.StatusUnauthorized)
						return
					}
					deviceID = claims.DeviceID
					if claims.StaffID != "" {
						ctx = utils.SetStaffContext(ctx, claims.StaffID)
					}
				}
			} else {
				deviceID = header
			}

			if deviceID != "" {
				ctx = utils.SetDeviceContext(ctx, deviceID)
				ctx = logger.WithDeviceID(ctx, deviceID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
