package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationInputUnmarshal(t *testing.T) {
	var req AttendanceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"location":"Head Office"}`), &req))
	assert.Equal(t, "Head Office", req.Location.Address)
	assert.False(t, req.Location.HasCoordinates())
	assert.Nil(t, req.Location.Coordinates())

	req = AttendanceRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"location":{"latitude":13.75,"longitude":100.5}}`), &req))
	require.True(t, req.Location.HasCoordinates())
	assert.Equal(t, &Coordinates{Latitude: 13.75, Longitude: 100.5}, req.Location.Coordinates())

	req = AttendanceRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"location":{"latitude":13.75}}`), &req))
	assert.False(t, req.Location.HasCoordinates(), "both coordinates are required")

	req = AttendanceRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"location":null}`), &req))
	assert.Equal(t, LocationInput{}, req.Location)

	assert.Error(t, json.Unmarshal([]byte(`{"location":42}`), &req))
}

func TestAppErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("check-in: %w", ErrDuplicateCheckIn)
	assert.True(t, errors.Is(wrapped, ErrDuplicateCheckIn))
	assert.False(t, errors.Is(wrapped, ErrAlreadyCheckedIn))

	assert.Same(t, ErrUserNotFound, AsAppError(fmt.Errorf("x: %w", ErrUserNotFound)))

	internal := AsAppError(errors.New("socket closed"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Contains(t, internal.Error(), "socket closed")

	assert.True(t, KindCheckIn.Valid())
	assert.False(t, EventKind("break").Valid())
}
