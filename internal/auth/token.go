package auth

import (
	"net/http"
	"strings"
)

const deviceTokenCookie = "device_token"

// ExtractDeviceToken reads the kiosk's device token from its cookie, falling
// back to a bearer Authorization header.
func ExtractDeviceToken(r *http.Request) string {
	if cookie, err := r.Cookie(deviceTokenCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
