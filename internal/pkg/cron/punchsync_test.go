package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/devicecloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePunchLogSource struct {
	logs      map[string][]devicecloud.PunchLog
	since     map[string][]time.Time
	errSerial string
}

func (s *fakePunchLogSource) FetchPunchLogs(ctx context.Context, serial string, since time.Time) ([]devicecloud.PunchLog, error) {
	if s.since == nil {
		s.since = make(map[string][]time.Time)
	}
	s.since[serial] = append(s.since[serial], since)
	if serial == s.errSerial {
		return nil, errors.New("device unreachable")
	}
	return s.logs[serial], nil
}

type fakeDeviceDirectory struct {
	devices []device.Device
}

func (r *fakeDeviceDirectory) GetByID(ctx context.Context, id string) (device.Device, error) {
	for _, d := range r.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return device.Device{}, device.ErrDeviceNotFound
}

func (r *fakeDeviceDirectory) GetBySerial(ctx context.Context, serial string) (device.Device, error) {
	for _, d := range r.devices {
		if d.Serial == serial {
			return d, nil
		}
	}
	return device.Device{}, device.ErrDeviceNotFound
}

func (r *fakeDeviceDirectory) List(ctx context.Context) ([]device.Device, error) {
	return r.devices, nil
}

type fakeIngestService struct {
	deviceIDs []string
	rows      [][]attendance.IngestPunchRow
}

func (s *fakeIngestService) BuildAttendanceRecords(ctx context.Context, req attendance.AttendanceReportRequest) ([]attendance.DayAttendanceRecordResponse, error) {
	return nil, nil
}

func (s *fakeIngestService) IngestPunches(ctx context.Context, deviceID string, req attendance.IngestPunchesRequest) (attendance.IngestPunchesResponse, error) {
	s.deviceIDs = append(s.deviceIDs, deviceID)
	s.rows = append(s.rows, req.Rows)
	return attendance.IngestPunchesResponse{Accepted: len(req.Rows)}, nil
}

func activeDevice(id, serial string) device.Device {
	return device.Device{ID: id, Serial: serial, Status: device.StatusActive}
}

func TestSyncDevicePunches_CursorAdvancesToNewestLog(t *testing.T) {
	source := &fakePunchLogSource{logs: map[string][]devicecloud.PunchLog{
		"SN-001": {
			{DeviceUserID: "42", Timestamp: "2026-03-10T09:00:00Z", Function: "in"},
			{DeviceUserID: "42", Timestamp: "2026-03-10T18:00:00Z", Function: "out"},
		},
	}}
	svc := &fakeIngestService{}
	jobs := NewPunchSyncJobs(source, &fakeDeviceDirectory{
		devices: []device.Device{activeDevice("dev-1", "SN-001")},
	}, svc)

	require.NoError(t, jobs.SyncDevicePunches(context.Background()))
	require.NoError(t, jobs.SyncDevicePunches(context.Background()))

	calls := source.since["SN-001"]
	require.Len(t, calls, 2)

	// First fetch reaches one day back; the second resumes at the newest
	// ingested log, not the wall clock, so punches recorded mid-fetch are
	// picked up next round.
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -1), calls[0], time.Minute)
	assert.True(t, calls[1].Equal(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))

	require.NotEmpty(t, svc.rows)
	assert.Equal(t, "dev-1", svc.deviceIDs[0])
	require.Len(t, svc.rows[0], 2)
	assert.Equal(t, "42", svc.rows[0][0].DeviceUserID)
	assert.Equal(t, "in", svc.rows[0][0].DeviceFunction)
}

func TestSyncDevicePunches_EmptyFetchLeavesCursor(t *testing.T) {
	source := &fakePunchLogSource{}
	jobs := NewPunchSyncJobs(source, &fakeDeviceDirectory{
		devices: []device.Device{activeDevice("dev-1", "SN-001")},
	}, &fakeIngestService{})

	require.NoError(t, jobs.SyncDevicePunches(context.Background()))
	require.NoError(t, jobs.SyncDevicePunches(context.Background()))

	calls := source.since["SN-001"]
	require.Len(t, calls, 2)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -1), calls[1], time.Minute)
}

func TestSyncDevicePunches_SkipsInactiveDevices(t *testing.T) {
	source := &fakePunchLogSource{}
	jobs := NewPunchSyncJobs(source, &fakeDeviceDirectory{devices: []device.Device{
		{ID: "dev-1", Serial: "SN-001", Status: device.StatusDisabled},
	}}, &fakeIngestService{})

	require.NoError(t, jobs.SyncDevicePunches(context.Background()))
	assert.Empty(t, source.since)
}

func TestSyncDevicePunches_FailingDeviceDoesNotBlockOthers(t *testing.T) {
	source := &fakePunchLogSource{
		errSerial: "SN-001",
		logs: map[string][]devicecloud.PunchLog{
			"SN-002": {{DeviceUserID: "7", Timestamp: "2026-03-10T08:00:00Z", Function: "in"}},
		},
	}
	svc := &fakeIngestService{}
	jobs := NewPunchSyncJobs(source, &fakeDeviceDirectory{devices: []device.Device{
		activeDevice("dev-1", "SN-001"),
		activeDevice("dev-2", "SN-002"),
	}}, svc)

	require.NoError(t, jobs.SyncDevicePunches(context.Background()))
	assert.Equal(t, []string{"dev-2"}, svc.deviceIDs)
}
