package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/devicecloud"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
)

// PunchLogSource is the slice of the vendor cloud client the sync job needs.
type PunchLogSource interface {
	FetchPunchLogs(ctx context.Context, serial string, since time.Time) ([]devicecloud.PunchLog, error)
}

// PunchSyncJobs pulls punch logs from the vendor cloud for every active device
// and feeds them through the same ingest path the push endpoint uses.
type PunchSyncJobs struct {
	cloud         PunchLogSource
	deviceRepo    device.DeviceRepository
	attendanceSvc attendance.AttendanceService

	mu       sync.Mutex
	lastSync map[string]time.Time
}

func NewPunchSyncJobs(
	cloud PunchLogSource,
	deviceRepo device.DeviceRepository,
	attendanceSvc attendance.AttendanceService,
) *PunchSyncJobs {
	return &PunchSyncJobs{
		cloud:         cloud,
		deviceRepo:    deviceRepo,
		attendanceSvc: attendanceSvc,
		lastSync:      make(map[string]time.Time),
	}
}

func (j *PunchSyncJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	scheduler.AddJob("device_punch_sync", interval, j.SyncDevicePunches)
}

// SyncDevicePunches fetches new punch logs per device. A failing device is
// logged and skipped so one offline terminal does not block the rest.
func (j *PunchSyncJobs) SyncDevicePunches(ctx context.Context) error {
	devices, err := j.deviceRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, d := range devices {
		if d.Status != device.StatusActive {
			continue
		}

		since := j.sinceFor(d.ID)
		logs, err := j.cloud.FetchPunchLogs(ctx, d.Serial, since)
		if err != nil {
			slog.Error("Cron: punch sync failed for device", "serial", d.Serial, "error", err)
			continue
		}
		if len(logs) == 0 {
			continue
		}

		req := attendance.IngestPunchesRequest{Rows: make([]attendance.IngestPunchRow, 0, len(logs))}
		for _, l := range logs {
			req.Rows = append(req.Rows, attendance.IngestPunchRow{
				DeviceUserID:   l.DeviceUserID,
				Timestamp:      l.Timestamp,
				DeviceFunction: l.Function,
			})
		}

		resp, err := j.attendanceSvc.IngestPunches(ctx, d.ID, req)
		if err != nil {
			slog.Error("Cron: punch ingest failed for device", "serial", d.Serial, "error", err)
			continue
		}

		slog.Info("Cron: punch sync completed for device",
			"serial", d.Serial, "accepted", resp.Accepted, "skipped", resp.Skipped)
		// The cursor moves to the newest ingested log, not the wall clock, so
		// punches recorded between the fetch and now surface next round.
		j.setSince(d.ID, latestTimestamp(logs, since))
	}

	return nil
}

func (j *PunchSyncJobs) sinceFor(deviceID string) time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	if t, ok := j.lastSync[deviceID]; ok {
		return t
	}
	// First sync after boot reaches one day back.
	return time.Now().AddDate(0, 0, -1)
}

func (j *PunchSyncJobs) setSince(deviceID string, t time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastSync[deviceID] = t
}

// latestTimestamp returns the newest parseable log timestamp, falling back to
// the current cursor when none parses.
func latestTimestamp(logs []devicecloud.PunchLog, cursor time.Time) time.Time {
	latest := cursor
	for _, l := range logs {
		if ts, ok := validator.IsValidDateTime(l.Timestamp); ok && ts.After(latest) {
			latest = ts
		}
	}
	return latest
}
