package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendance-backend/src/controllers"
	"attendance-backend/src/jobs"
	"attendance-backend/src/models"
	"attendance-backend/src/services/accounts"
	"attendance-backend/src/services/attendance"
	"attendance-backend/src/services/leaves"
	"attendance-backend/src/testutil"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app      *fiber.App
	users    *testutil.Users
	checkins *testutil.Events
	leaves   *testutil.Leaves
	userID   string
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := testutil.NewUsers()
	checkins := testutil.NewCheckins()
	checkouts := testutil.NewCheckouts()
	leaveStore := testutil.NewLeaves()

	userID := users.Add(models.User{Email: "alice@example.com", Name: "Alice"})
	token, err := utils.GenerateJWT(userID, "alice@example.com")
	require.NoError(t, err)

	attendanceSvc := attendance.NewService(users, checkins, checkouts, testutil.StaticResolver(models.UnknownLocation), attendance.NewKeyedMutex())
	marker := jobs.NewAbsenceMarker(users, checkins, time.UTC)

	app := fiber.New()
	InitRoutes(app, Handlers{
		Auth:       controllers.NewAuthController(accounts.NewService(users)),
		Attendance: controllers.NewAttendanceController(attendanceSvc),
		Leaves:     controllers.NewLeaveController(leaves.NewService(leaveStore, users)),
		Jobs:       controllers.NewJobsController(nil, marker),
	})
	return &testServer{app: app, users: users, checkins: checkins, leaves: leaveStore, userID: userID, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var er models.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &er))
	return er.Code
}

func (s *testServer) attendanceBody(date, clock string) map[string]interface{} {
	return map[string]interface{}{
		"userId":   s.userID,
		"note":     "office",
		"image":    "",
		"time":     date + " " + clock,
		"date":     date,
		"location": "Head Office",
	}
}

func TestAttendanceEndpoints(t *testing.T) {
	suiteResult := testutil.NewTestSuiteResult("Attendance Endpoint Tests")
	defer suiteResult.PrintSummary()

	t.Run("CheckInFlow", func(t *testing.T) {
		defer suiteResult.Track(t, "Check-in flow over HTTP")()
		s := newTestServer(t)

		status, data := s.do(t, http.MethodPost, "/checkout", s.attendanceBody("2025-03-10", "08:00:00"))
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "NOT_CHECKED_IN", errorCode(t, data))

		status, data = s.do(t, http.MethodPost, "/checkin", s.attendanceBody("2025-03-10", "09:00:00"))
		require.Equal(t, http.StatusOK, status, string(data))
		var resp struct {
			Message string                 `json:"message"`
			Data    models.AttendanceEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &resp))
		assert.Equal(t, "Head Office", resp.Data.Location)
		assert.Equal(t, models.EventStatusPending, resp.Data.Status)

		status, data = s.do(t, http.MethodPost, "/checkin", s.attendanceBody("2025-03-10", "09:30:00"))
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "DUPLICATE_CHECK_IN", errorCode(t, data))

		status, _ = s.do(t, http.MethodPost, "/checkout", s.attendanceBody("2025-03-10", "18:00:00"))
		assert.Equal(t, http.StatusOK, status)
		assert.False(t, s.users.Get(s.userID).CheckIn)
	})

	t.Run("CheckInValidation", func(t *testing.T) {
		defer suiteResult.Track(t, "Check-in validation")()
		s := newTestServer(t)

		body := s.attendanceBody("2025-03-10", "09:00:00")
		body["time"] = "09:00"
		status, data := s.do(t, http.MethodPost, "/checkin", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, data))

		body = s.attendanceBody("2025-03-10", "09:00:00")
		body["userId"] = "000000000000000000000000"
		status, data = s.do(t, http.MethodPost, "/checkin", body)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(t, data))
	})

	t.Run("CoordinatesLocation", func(t *testing.T) {
		defer suiteResult.Track(t, "Coordinates location")()
		s := newTestServer(t)

		body := s.attendanceBody("2025-03-10", "09:00:00")
		body["location"] = map[string]float64{"latitude": 13.7563, "longitude": 100.5018}
		status, data := s.do(t, http.MethodPost, "/checkin", body)
		require.Equal(t, http.StatusOK, status, string(data))
		assert.Equal(t, models.UnknownLocation, s.checkins.All()[0].Location)
		require.NotNil(t, s.checkins.All()[0].Coordinates)
	})

	t.Run("MissingToken", func(t *testing.T) {
		defer suiteResult.Track(t, "Missing token")()
		s := newTestServer(t)
		s.token = ""

		status, data := s.do(t, http.MethodPost, "/checkin", s.attendanceBody("2025-03-10", "09:00:00"))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "MISSING_TOKEN", errorCode(t, data))
	})
}

func TestHistoryEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.checkins.Seed(t,
		models.AttendanceEvent{UserID: s.userID, Date: "2025-02-28", Time: "2025-02-28 09:00:00", Status: models.EventStatusPending},
		models.AttendanceEvent{UserID: s.userID, Date: "2025-03-01", Time: "2025-03-01 00:00:01", Status: models.EventStatusPending},
	)

	status, data := s.do(t, http.MethodGet, "/api/checkins/"+s.userID+"?month=2&year=2025", nil)
	require.Equal(t, http.StatusOK, status)
	var events []models.AttendanceEvent
	require.NoError(t, json.Unmarshal(data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "2025-02-28 09:00:00", events[0].Time)

	status, data = s.do(t, http.MethodGet, "/api/checkins/"+s.userID+"?date=2025-03-01", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(data, &events))
	assert.Len(t, events, 1)

	status, data = s.do(t, http.MethodGet, "/api/checkouts/"+s.userID+"?date=2025-03-01", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(data))

	status, data = s.do(t, http.MethodGet, "/api/checkins/"+s.userID+"?month=2", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_TIME_FILTER", errorCode(t, data))

	id := s.checkins.All()[0].ID.Hex()
	status, _ = s.do(t, http.MethodPatch, "/api/checkins/"+id+"/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.EventStatusApproved, s.checkins.All()[0].Status)

	status, _ = s.do(t, http.MethodPatch, "/api/checkins/"+id+"/status", map[string]string{"status": "late"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, data = s.do(t, http.MethodPatch, "/api/checkouts/"+id+"/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "EVENT_NOT_FOUND", errorCode(t, data))
}

func TestLeaveEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodPost, "/api/leaves", map[string]string{
		"userId": s.userID, "leaveStartDate": "2025-01-30", "leaveEndDate": "2025-02-02", "reason": "trip",
	})
	require.Equal(t, http.StatusCreated, status, string(data))
	var leave models.LeaveRequest
	require.NoError(t, json.Unmarshal(data, &leave))
	assert.Equal(t, models.LeaveStatusPending, leave.Status)

	status, data = s.do(t, http.MethodGet, "/api/leaves/monthly-days/"+s.userID+"?month=2&year=2025", nil)
	require.Equal(t, http.StatusOK, status)
	var days models.MonthlyLeaveDaysResponse
	require.NoError(t, json.Unmarshal(data, &days))
	assert.Equal(t, 0, days.LeaveDays, "pending leave is not counted")

	status, _ = s.do(t, http.MethodPatch, "/api/leaves/"+leave.ID.Hex()+"/status", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, status)

	status, data = s.do(t, http.MethodPatch, "/api/leaves/"+leave.ID.Hex()+"/status", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "LEAVE_ALREADY_DECIDED", errorCode(t, data))

	_, data = s.do(t, http.MethodGet, "/api/leaves/monthly-days/"+s.userID+"?month=2&year=2025", nil)
	require.NoError(t, json.Unmarshal(data, &days))
	assert.Equal(t, 2, days.LeaveDays)

	status, data = s.do(t, http.MethodGet, "/api/leaves/monthly-days/"+s.userID+"?month=13&year=2025", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_MONTH", errorCode(t, data))

	status, data = s.do(t, http.MethodPost, "/api/leaves", map[string]string{
		"userId": s.userID, "leaveStartDate": "2025-03-10", "leaveEndDate": "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_LEAVE_RANGE", errorCode(t, data))

	status, _ = s.do(t, http.MethodDelete, "/api/leaves/"+leave.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/leaves/"+leave.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *testServer) doRaw(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestMalformedInputHasErrorCode(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name, method, path, body string
	}{
		{"CheckInBody", http.MethodPost, "/checkin", `{"userId":`},
		{"StatusBody", http.MethodPatch, "/api/checkins/ffffffffffffffffffffffff/status", `not json`},
		{"LeaveBody", http.MethodPost, "/api/leaves", `{"userId": 42`},
		{"DecideBody", http.MethodPatch, "/api/leaves/ffffffffffffffffffffffff/status", `[`},
		{"HistoryQuery", http.MethodGet, "/api/checkins/" + s.userID + "?month=abc&year=2025", ""},
		{"SignupBody", http.MethodPost, "/signup", `{`},
		{"LoginBody", http.MethodPost, "/login", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := s.doRaw(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			var er models.ErrorResponse
			require.NoError(t, json.Unmarshal(data, &er))
			assert.Equal(t, http.StatusBadRequest, er.Status)
			assert.Equal(t, "INVALID_REQUEST", er.Code)
			assert.NotEmpty(t, er.Message)
		})
	}
}

func TestMarkAbsentEndpoint(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodPost, "/api/jobs/mark-absent?date=2025-03-10", nil)
	require.Equal(t, http.StatusOK, status, string(data))
	var resp struct {
		Marked int `json:"marked"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, 1, resp.Marked)

	// absent นับเป็นเช็คอินของวันนั้น
	status, data = s.do(t, http.MethodPost, "/checkin", s.attendanceBody("2025-03-10", "10:00:00"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_CHECK_IN", errorCode(t, data))
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, data := s.do(t, http.MethodPost, "/signup", map[string]string{"email": "bob@example.com", "password": "secret1", "name": "Bob"})
	require.Equal(t, http.StatusOK, status, string(data))

	status, data = s.do(t, http.MethodPost, "/signup", map[string]string{"email": "bob@example.com", "password": "secret1", "name": "Bob"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "USER_EXISTS", errorCode(t, data))

	status, data = s.do(t, http.MethodPost, "/login", map[string]string{"email": "bob@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, status, string(data))
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(data, &login))
	assert.NotEmpty(t, login.Token)
	assert.False(t, login.User.CheckIn)

	status, data = s.do(t, http.MethodPost, "/login", map[string]string{"email": "bob@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, data))

	status, data = s.do(t, http.MethodGet, "/getUser/"+s.userID, nil)
	require.Equal(t, http.StatusOK, status)
	var user models.User
	require.NoError(t, json.Unmarshal(data, &user))
	assert.Equal(t, "Alice", user.Name)

	s.token = "not-a-jwt"
	status, data = s.do(t, http.MethodGet, "/getUser/"+s.userID, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, data))
}
