package bookingservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nopLogger{}, nil)
}

func TestRequestOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/send-otp", r.URL.Path)

		var req OTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)

		w.WriteHeader(http.StatusOK)
	})

	err := client.RequestOTP(context.Background(), "user@example.com")

	assert.NoError(t, err)
}

func TestRequestOTPServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.RequestOTP(context.Background(), "user@example.com")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyOTP(t *testing.T) {
	tests := []struct {
		name    string
		success bool
	}{
		{name: "code accepted", success: true},
		{name: "code rejected", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/admin/verify-otp", r.URL.Path)

				var req OTPVerifyRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "123456", req.Otp)

				json.NewEncoder(w).Encode(OTPVerifyResponse{Success: tt.success})
			})

			ok, err := client.VerifyOTP(context.Background(), "user@example.com", "123456")

			// Несовпадение кода - не ошибка транспорта
			require.NoError(t, err)
			assert.Equal(t, tt.success, ok)
		})
	}
}

func TestGetSlots(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/slots", r.URL.Path)
		assert.Equal(t, "rao@hospital.example", r.URL.Query().Get("doctorEmail"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))

		json.NewEncoder(w).Encode(SlotsResponse{
			AvailableSlots: []SlotDTO{
				{Start: "10:00", Booked: false},
				{Start: "10:30", Booked: true},
			},
		})
	})

	resp, err := client.GetSlots(context.Background(), "rao@hospital.example", "2026-09-01")

	require.NoError(t, err)
	require.Len(t, resp.AvailableSlots, 2)
	assert.True(t, resp.AvailableSlots[1].Booked)
}

func TestGetSlotsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetSlots(context.Background(), "rao@hospital.example", "2026-09-01")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateAppointment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointment", r.URL.Path)

		var payload AppointmentPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Dr. Rao", payload.Doctor)
		assert.Equal(t, "10:00", payload.Time)

		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateAppointment(context.Background(), &AppointmentPayload{
		FullName: "Asha Nair",
		Doctor:   "Dr. Rao",
		Date:     "2026-09-01",
		Time:     "10:00",
	})

	assert.NoError(t, err)
}

func TestCreateAppointmentRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := client.CreateAppointment(context.Background(), &AppointmentPayload{})

	assert.ErrorIs(t, err, ErrRejected)
}

func TestResolveReschedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reschedule/tok-123", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))

		json.NewEncoder(w).Encode(RescheduleResponse{
			Appointment: AppointmentSummaryDTO{
				Doctor:      "Dr. Rao",
				DoctorEmail: "rao@hospital.example",
			},
			Slots: []SlotDTO{{Start: "10:00"}},
		})
	})

	date := "2026-09-01"
	resp, err := client.ResolveReschedule(context.Background(), "tok-123", &date)

	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao", resp.Appointment.Doctor)
	require.Len(t, resp.Slots, 1)
}

func TestResolveRescheduleTokenInvalid(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone, http.StatusBadRequest} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.ResolveReschedule(context.Background(), "tok-123", nil)

		assert.ErrorIs(t, err, ErrTokenInvalid, "status %d", status)
	}
}

func TestSubmitReschedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reschedule/tok-123", r.URL.Path)

		var payload ReschedulePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2026-09-01", payload.Date)
		assert.Equal(t, "10:00", payload.Time)

		w.WriteHeader(http.StatusOK)
	})

	err := client.SubmitReschedule(context.Background(), "tok-123", "2026-09-01", "10:00")

	assert.NoError(t, err)
}

func TestSubmitRescheduleConflictCarriesSlots(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ErrorResponse{
			Message:        "Slot already booked",
			AvailableSlots: []SlotDTO{{Start: "11:00"}},
		})
	})

	err := client.SubmitReschedule(context.Background(), "tok-123", "2026-09-01", "10:00")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Slot already booked", conflict.Message)
	require.Len(t, conflict.AvailableSlots, 1)
	assert.Equal(t, "11:00", conflict.AvailableSlots[0].Start)
}

func TestSubmitRescheduleTokenInvalid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})

	err := client.SubmitReschedule(context.Background(), "tok-123", "2026-09-01", "10:00")

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClientUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{}, nil)

	err := client.RequestOTP(context.Background(), "user@example.com")

	assert.True(t, errors.Is(err, ErrUnavailable))
}
