package slotview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	"github.com/m04kA/HSC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingClient struct {
	getSlotsFunc func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error)
}

func (f *fakeBookingClient) GetSlots(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
	return f.getSlotsFunc(ctx, doctorEmail, date)
}

func slotsResponse(slots ...bookingservice.SlotDTO) *bookingservice.SlotsResponse {
	return &bookingservice.SlotsResponse{AvailableSlots: slots}
}

func TestLoadPopulatesSlots(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(
				bookingservice.SlotDTO{Start: "10:00", Booked: false},
				bookingservice.SlotDTO{Start: "10:30", Booked: true},
			), nil
		},
	}
	view := NewView(client, nopLogger{})

	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	snap := view.Snapshot()
	assert.Equal(t, StatusPopulated, snap.Status)
	require.Len(t, snap.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), snap.Slots[0].Start)
	assert.True(t, snap.Slots[1].Booked)
}

// Слоты показываются по возрастанию времени независимо от порядка в ответе.
func TestLoadSortsSlotsByStartTime(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(
				bookingservice.SlotDTO{Start: "14:30", Booked: false},
				bookingservice.SlotDTO{Start: "09:00", Booked: true},
				bookingservice.SlotDTO{Start: "10:30", Booked: false},
			), nil
		},
	}
	view := NewView(client, nopLogger{})

	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	snap := view.Snapshot()
	require.Len(t, snap.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), snap.Slots[0].Start)
	assert.Equal(t, types.TimeString("10:30"), snap.Slots[1].Start)
	assert.Equal(t, types.TimeString("14:30"), snap.Slots[2].Start)
}

func TestLoadEmptySetGetsNoSlotsMessage(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(), nil
		},
	}
	view := NewView(client, nopLogger{})

	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	snap := view.Snapshot()
	assert.Equal(t, StatusPopulated, snap.Status)
	assert.Empty(t, snap.Slots)
	assert.Equal(t, MsgNoSlots, snap.Message)
}

func TestLoadFailureSetsErrorState(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return nil, errors.New("upstream down")
		},
	}
	view := NewView(client, nopLogger{})

	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	snap := view.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, MsgFetchFailed, snap.Message)
	assert.Empty(t, snap.Slots)
}

func TestLoadWithEmptySelectorClearsView(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(bookingservice.SlotDTO{Start: "10:00"}), nil
		},
	}
	view := NewView(client, nopLogger{})
	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	view.Load(context.Background(), "", "2026-09-01")

	assert.Equal(t, StatusNone, view.Snapshot().Status)
}

func TestSelect(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(
				bookingservice.SlotDTO{Start: "10:00", Booked: false},
				bookingservice.SlotDTO{Start: "10:30", Booked: true},
			), nil
		},
	}
	view := NewView(client, nopLogger{})

	// Выбор до загрузки невозможен
	assert.ErrorIs(t, view.Select("10:00"), ErrNotPopulated)

	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")

	assert.ErrorIs(t, view.Select("11:00"), ErrUnknownSlot)
	assert.ErrorIs(t, view.Select("10:30"), ErrSlotBooked)

	require.NoError(t, view.Select("10:00"))
	assert.Equal(t, types.TimeString("10:00"), view.Selected())
}

func TestReloadClearsSelection(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(bookingservice.SlotDTO{Start: "10:00"}), nil
		},
	}
	view := NewView(client, nopLogger{})
	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")
	require.NoError(t, view.Select("10:00"))

	view.Load(context.Background(), "rao@hospital.example", "2026-09-02")

	assert.True(t, view.Selected().IsZero())
}

func TestReplaceClearsSelectionAndSetsSlots(t *testing.T) {
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			return slotsResponse(bookingservice.SlotDTO{Start: "10:00"}), nil
		},
	}
	view := NewView(client, nopLogger{})
	view.Load(context.Background(), "rao@hospital.example", "2026-09-01")
	require.NoError(t, view.Select("10:00"))

	view.Replace([]bookingservice.SlotDTO{
		{Start: "11:00", Booked: false},
	}, "Slot already booked")

	snap := view.Snapshot()
	assert.Equal(t, StatusPopulated, snap.Status)
	assert.True(t, snap.Selected.IsZero())
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, types.TimeString("11:00"), snap.Slots[0].Start)
	assert.Equal(t, "Slot already booked", snap.Message)
}

func TestReplaceEmptySetGetsNoSlotsMessage(t *testing.T) {
	view := NewView(&fakeBookingClient{}, nopLogger{})

	view.Replace(nil, "")

	snap := view.Snapshot()
	assert.Equal(t, StatusPopulated, snap.Status)
	assert.Equal(t, MsgNoSlots, snap.Message)
}

// Запоздавший ответ для уже смененной пары (врач, дата) отбрасывается.
func TestLoadDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	inFlight := make(chan struct{})
	client := &fakeBookingClient{
		getSlotsFunc: func(ctx context.Context, doctorEmail, date string) (*bookingservice.SlotsResponse, error) {
			if date == "2026-09-01" {
				close(inFlight)
				<-release
				return slotsResponse(bookingservice.SlotDTO{Start: "09:00"}), nil
			}
			return slotsResponse(bookingservice.SlotDTO{Start: "14:00"}), nil
		},
	}
	view := NewView(client, nopLogger{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		view.Load(context.Background(), "rao@hospital.example", "2026-09-01")
	}()
	<-inFlight

	view.Load(context.Background(), "rao@hospital.example", "2026-09-02")

	close(release)
	wg.Wait()

	snap := view.Snapshot()
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, types.TimeString("14:00"), snap.Slots[0].Start)
}
