package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance-backend/src/models"
	"attendance-backend/src/testutil"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAbsent(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewUsers()
	checkins := testutil.NewCheckins()
	present := users.Add(models.User{Email: "present@example.com"})
	absent := users.Add(models.User{Email: "absent@example.com"})
	checkins.Seed(t, models.AttendanceEvent{UserID: present, Date: "2025-03-10", Time: "2025-03-10 09:00:00", Status: models.EventStatusPending})

	marker := NewAbsenceMarker(users, checkins, time.UTC)

	marked, err := marker.MarkAbsent(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	all := checkins.All()
	require.Len(t, all, 2)
	assert.Equal(t, absent, all[1].UserID)
	assert.Equal(t, models.EventStatusAbsent, all[1].Status)
	assert.Equal(t, "2025-03-10 23:59:59", all[1].Time)

	// รันซ้ำต้องไม่บันทึกเพิ่ม
	marked, err = marker.MarkAbsent(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
	assert.Len(t, checkins.All(), 2)
}

func TestMarkAbsentDefaultsToToday(t *testing.T) {
	users := testutil.NewUsers()
	checkins := testutil.NewCheckins()
	users.Add(models.User{Email: "a@example.com"})

	marker := NewAbsenceMarker(users, checkins, time.FixedZone("ICT", 7*60*60))
	marker.now = func() time.Time { return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC) }

	marked, err := marker.MarkAbsent(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, marked)
	assert.Equal(t, "2025-03-11", checkins.All()[0].Date)
}

func TestMarkAbsentInvalidDate(t *testing.T) {
	marker := NewAbsenceMarker(testutil.NewUsers(), testutil.NewCheckins(), nil)
	_, err := marker.MarkAbsent(context.Background(), "11-03-2025")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindValidation, appErr.Kind)
}

func TestHandleMarkAbsentTask(t *testing.T) {
	users := testutil.NewUsers()
	checkins := testutil.NewCheckins()
	users.Add(models.User{Email: "a@example.com"})
	marker := NewAbsenceMarker(users, checkins, time.UTC)

	task, err := NewMarkAbsentTask("2025-03-10")
	require.NoError(t, err)
	require.NoError(t, marker.HandleMarkAbsentTask(context.Background(), task))
	assert.Len(t, checkins.All(), 1)

	err = marker.HandleMarkAbsentTask(context.Background(), asynq.NewTask(TypeMarkAbsent, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	bad, err := NewMarkAbsentTask("not-a-date")
	require.NoError(t, err)
	err = marker.HandleMarkAbsentTask(context.Background(), bad)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestEnqueueMarkAbsentRunsInlineWithoutClient(t *testing.T) {
	users := testutil.NewUsers()
	checkins := testutil.NewCheckins()
	users.Add(models.User{Email: "a@example.com"})
	users.Add(models.User{Email: "b@example.com"})
	marker := NewAbsenceMarker(users, checkins, time.UTC)

	queued, marked, err := EnqueueMarkAbsent(context.Background(), nil, marker, "2025-03-10")
	require.NoError(t, err)
	assert.False(t, queued)
	assert.Equal(t, 2, marked)
}
