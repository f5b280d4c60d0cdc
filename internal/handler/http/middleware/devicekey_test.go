package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeDeviceRepo struct {
	devices map[string]device.Device
}

func (r *fakeDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	for _, d := range r.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return device.Device{}, device.ErrDeviceNotFound
}

func (r *fakeDeviceRepo) GetBySerial(ctx context.Context, serial string) (device.Device, error) {
	d, ok := r.devices[serial]
	if !ok {
		return device.Device{}, device.ErrDeviceNotFound
	}
	return d, nil
}

func (r *fakeDeviceRepo) List(ctx context.Context) ([]device.Device, error) {
	var out []device.Device
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out, nil
}

func newDeviceRepo(t *testing.T, status device.Status) *fakeDeviceRepo {
	hash, err := bcrypt.GenerateFromPassword([]byte("terminal-key"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeDeviceRepo{devices: map[string]device.Device{
		"SN-001": {
			ID:         "dev-1",
			Serial:     "SN-001",
			APIKeyHash: string(hash),
			Status:     status,
		},
	}}
}

func deviceEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := DeviceFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(d.ID))
	})
}

func TestDeviceKeyRequired(t *testing.T) {
	t.Run("valid key passes and device reaches the handler", func(t *testing.T) {
		mw := DeviceKeyRequired(newDeviceRepo(t, device.StatusActive))

		req := httptest.NewRequest(http.MethodPost, "/punches", nil)
		req.Header.Set("X-Device-Serial", "SN-001")
		req.Header.Set("X-Device-Key", "terminal-key")
		rec := httptest.NewRecorder()

		mw(deviceEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dev-1", rec.Body.String())
	})

	t.Run("wrong key is unauthorized", func(t *testing.T) {
		mw := DeviceKeyRequired(newDeviceRepo(t, device.StatusActive))

		req := httptest.NewRequest(http.MethodPost, "/punches", nil)
		req.Header.Set("X-Device-Serial", "SN-001")
		req.Header.Set("X-Device-Key", "stolen-key")
		rec := httptest.NewRecorder()

		mw(deviceEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown serial is unauthorized", func(t *testing.T) {
		mw := DeviceKeyRequired(newDeviceRepo(t, device.StatusActive))

		req := httptest.NewRequest(http.MethodPost, "/punches", nil)
		req.Header.Set("X-Device-Serial", "SN-999")
		req.Header.Set("X-Device-Key", "terminal-key")
		rec := httptest.NewRecorder()

		mw(deviceEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("disabled device is forbidden", func(t *testing.T) {
		mw := DeviceKeyRequired(newDeviceRepo(t, device.StatusDisabled))

		req := httptest.NewRequest(http.MethodPost, "/punches", nil)
		req.Header.Set("X-Device-Serial", "SN-001")
		req.Header.Set("X-Device-Key", "terminal-key")
		rec := httptest.NewRecorder()

		mw(deviceEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing headers are unauthorized", func(t *testing.T) {
		mw := DeviceKeyRequired(newDeviceRepo(t, device.StatusActive))

		req := httptest.NewRequest(http.MethodPost, "/punches", nil)
		rec := httptest.NewRecorder()

		mw(deviceEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
