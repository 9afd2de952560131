// Package testutil in-memory stores และตัวช่วยจับเวลาสำหรับเทสต์
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"attendance-backend/src/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Users แทน collection users
type Users struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	order []string

	// FailSetState ทำให้ SetCheckedIn/SetCheckedOut คืน error นี้
	FailSetState error
}

func NewUsers() *Users {
	return &Users{byID: map[string]*models.User{}}
}

// Add เพิ่มผู้ใช้และคืน id แบบ hex
func (u *Users) Add(user models.User) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)
	id := user.ID.Hex()
	u.byID[id] = &user
	u.order = append(u.order, id)
	return id
}

func (u *Users) Get(id string) models.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user, ok := u.byID[id]; ok {
		return *user
	}
	return models.User{}
}

func (u *Users) FindByID(_ context.Context, userID string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, id := range u.order {
		if u.byID[id].Email == strings.ToLower(email) {
			cp := *u.byID[id]
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	if _, err := u.FindByEmail(ctx, user.Email); err == nil {
		return models.ErrUserExists
	}
	user.ID = primitive.NewObjectID()
	u.Add(*user)
	return nil
}

func (u *Users) SetCheckedIn(_ context.Context, userID, at string) error {
	return u.update(userID, func(user *models.User) {
		user.CheckIn = true
		user.LastCheckedIn = at
	})
}

func (u *Users) SetCheckedOut(_ context.Context, userID string) error {
	return u.update(userID, func(user *models.User) { user.CheckIn = false })
}

func (u *Users) ListIDs(context.Context) ([]string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.order...), nil
}

func (u *Users) update(userID string, fn func(*models.User)) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.FailSetState != nil {
		return u.FailSetState
	}
	user, ok := u.byID[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	fn(user)
	return nil
}

// Events แทน collection checkins หรือ checkouts
type Events struct {
	mu     sync.Mutex
	events []models.AttendanceEvent
	unique bool

	// Delay หน่วงเวลาใน ExistsOnDate ใช้จำลอง race ระหว่างอ่านกับเขียน
	Delay time.Duration
}

// NewCheckins บังคับ unique (userId, date) เหมือน index ใน MongoDB
func NewCheckins() *Events { return &Events{unique: true} }

func NewCheckouts() *Events { return &Events{} }

func (e *Events) All() []models.AttendanceEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.AttendanceEvent(nil), e.events...)
}

func (e *Events) ExistsOnDate(_ context.Context, userID, date string) (bool, error) {
	if e.Delay > 0 {
		time.Sleep(e.Delay)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ev := range e.events {
		if ev.UserID == userID && ev.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (e *Events) Insert(_ context.Context, ev *models.AttendanceEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unique {
		for _, existing := range e.events {
			if existing.UserID == ev.UserID && existing.Date == ev.Date {
				return models.ErrDuplicateCheckIn
			}
		}
	}
	ev.ID = primitive.NewObjectID()
	e.events = append(e.events, *ev)
	return nil
}

func (e *Events) Delete(_ context.Context, id primitive.ObjectID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, ev := range e.events {
		if ev.ID == id {
			e.events = append(e.events[:i], e.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (e *Events) FindInRange(_ context.Context, userID, from, to string) ([]models.AttendanceEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := []models.AttendanceEvent{}
	for _, ev := range e.events {
		if ev.UserID == userID && ev.Time >= from && ev.Time <= to {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (e *Events) UpdateStatus(_ context.Context, id, status string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.events {
		if e.events[i].ID.Hex() == id {
			e.events[i].Status = status
			return nil
		}
	}
	return models.ErrEventNotFound
}

// Seed เพิ่ม event ตรงๆ โดยไม่ผ่าน service ถ้าชน unique index เทสต์จะล้มทันที
func (e *Events) Seed(t testing.TB, evs ...models.AttendanceEvent) {
	t.Helper()
	for i := range evs {
		require.NoError(t, e.Insert(context.Background(), &evs[i]), "seed %s on %s", evs[i].UserID, evs[i].Date)
	}
}

// Leaves แทน collection leaveRequests
type Leaves struct {
	mu     sync.Mutex
	leaves []models.LeaveRequest
}

func NewLeaves() *Leaves { return &Leaves{} }

func (l *Leaves) Insert(_ context.Context, leave *models.LeaveRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	leave.ID = primitive.NewObjectID()
	l.leaves = append(l.leaves, *leave)
	return nil
}

func (l *Leaves) FindByID(_ context.Context, id string) (*models.LeaveRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, leave := range l.leaves {
		if leave.ID.Hex() == id {
			cp := leave
			return &cp, nil
		}
	}
	return nil, models.ErrLeaveNotFound
}

func (l *Leaves) ListByUser(_ context.Context, userID string, status models.LeaveStatus) ([]models.LeaveRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.LeaveRequest{}
	for _, leave := range l.leaves {
		if leave.UserID == userID && (status == "" || leave.Status == status) {
			out = append(out, leave)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LeaveStartDate.Before(out[j].LeaveStartDate) })
	return out, nil
}

func (l *Leaves) Decide(_ context.Context, id string, status models.LeaveStatus, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.leaves {
		if l.leaves[i].ID.Hex() != id {
			continue
		}
		if l.leaves[i].Status != models.LeaveStatusPending {
			return models.ErrLeaveAlreadyDecided
		}
		l.leaves[i].Status = status
		l.leaves[i].DecidedAt = &at
		return nil
	}
	return models.ErrLeaveNotFound
}

func (l *Leaves) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.leaves {
		if l.leaves[i].ID.Hex() == id {
			l.leaves = append(l.leaves[:i], l.leaves[i+1:]...)
			return nil
		}
	}
	return models.ErrLeaveNotFound
}

// FindApprovedOverlapping เงื่อนไขเดียวกับ query ใน MongoDB
func (l *Leaves) FindApprovedOverlapping(_ context.Context, userID string, from, to time.Time) ([]models.LeaveRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.LeaveRequest{}
	for _, leave := range l.leaves {
		if leave.UserID != userID || leave.Status != models.LeaveStatusApproved {
			continue
		}
		startsInside := !leave.LeaveStartDate.Before(from) && !leave.LeaveStartDate.After(to)
		endsInside := !leave.LeaveEndDate.Before(from) && !leave.LeaveEndDate.After(to)
		spans := leave.LeaveStartDate.Before(from) && leave.LeaveEndDate.After(to)
		if startsInside || endsInside || spans {
			out = append(out, leave)
		}
	}
	return out, nil
}

// Seed เพิ่มคำขอลาโดยตรง คืน id แบบ hex
func (l *Leaves) Seed(t testing.TB, leave models.LeaveRequest) string {
	t.Helper()
	require.NoError(t, l.Insert(context.Background(), &leave))
	return leave.ID.Hex()
}

// StaticResolver resolver ที่คืนชื่อคงที่
type StaticResolver string

func (s StaticResolver) Resolve(_ context.Context, in models.LocationInput) string {
	if in.Address != "" {
		return in.Address
	}
	return string(s)
}
