package middleware

import (
	"context"
	"net/http"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/response"
	"golang.org/x/crypto/bcrypt"
)

type deviceCtxKey struct{}

// DeviceFromContext returns the device authenticated by DeviceKeyRequired.
func DeviceFromContext(ctx context.Context) (device.Device, bool) {
	d, ok := ctx.Value(deviceCtxKey{}).(device.Device)
	return d, ok
}

// DeviceKeyRequired authenticates punch terminals. The device identifies itself
// with X-Device-Serial and proves possession of its API key via X-Device-Key,
// verified against the stored bcrypt hash.
func DeviceKeyRequired(deviceRepo device.DeviceRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			serial := r.Header.Get("X-Device-Serial")
			key := r.Header.Get("X-Device-Key")
			if serial == "" || key == "" {
				response.Unauthorized(w, "Missing device credentials")
				return
			}

			d, err := deviceRepo.GetBySerial(r.Context(), serial)
			if err != nil {
				response.HandleError(w, device.ErrInvalidDeviceKey)
				return
			}
			if d.Status != device.StatusActive {
				response.HandleError(w, device.ErrDeviceDisabled)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(d.APIKeyHash), []byte(key)); err != nil {
				response.HandleError(w, device.ErrInvalidDeviceKey)
				return
			}

			ctx := context.WithValue(r.Context(), deviceCtxKey{}, d)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
