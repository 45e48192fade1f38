package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	counts map[string]int
}

func (f *fakeMetrics) SetActiveSessions(kind string, n int) {
	f.counts[kind] = n
}

func newIntakeController() *intake.Controller {
	return intake.NewController(nil, nil, nopLogger{})
}

func newRescheduleController(token string) *reschedule.Controller {
	return reschedule.NewController(token, nil, nopLogger{})
}

func TestCreateAndGetIntake(t *testing.T) {
	m := NewManager(time.Minute, nopLogger{}, nil)

	id := m.CreateIntake(newIntakeController())
	require.NotEmpty(t, id)

	got, ok := m.GetIntake(id)
	require.True(t, ok)
	assert.NotNil(t, got)

	_, ok = m.GetIntake("missing")
	assert.False(t, ok)
}

func TestPutAndGetReschedule(t *testing.T) {
	m := NewManager(time.Minute, nopLogger{}, nil)

	m.PutReschedule("tok-123", newRescheduleController("tok-123"))

	_, ok := m.GetReschedule("tok-123")
	assert.True(t, ok)

	m.DropReschedule("tok-123")

	_, ok = m.GetReschedule("tok-123")
	assert.False(t, ok)
}

func TestCleanupEvictsExpiredSessions(t *testing.T) {
	metrics := &fakeMetrics{counts: make(map[string]int)}
	m := NewManager(10*time.Millisecond, nopLogger{}, metrics)

	id := m.CreateIntake(newIntakeController())
	m.PutReschedule("tok-123", newRescheduleController("tok-123"))

	time.Sleep(20 * time.Millisecond)
	m.Cleanup()

	_, ok := m.GetIntake(id)
	assert.False(t, ok)
	_, ok = m.GetReschedule("tok-123")
	assert.False(t, ok)
	assert.Equal(t, 0, metrics.counts["intake"])
	assert.Equal(t, 0, metrics.counts["reschedule"])
}

func TestGetExtendsTTL(t *testing.T) {
	m := NewManager(30*time.Millisecond, nopLogger{}, nil)

	id := m.CreateIntake(newIntakeController())

	// Обращения продлевают жизнь сессии за пределы исходного TTL
	for i := 0; i < 3; i++ {
		time.Sleep(15 * time.Millisecond)
		_, ok := m.GetIntake(id)
		require.True(t, ok)
	}

	m.Cleanup()

	_, ok := m.GetIntake(id)
	assert.True(t, ok)
}

func TestRunJanitorStops(t *testing.T) {
	m := NewManager(time.Minute, nopLogger{}, nil)

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		m.RunJanitor(5*time.Millisecond, stopCh)
		close(done)
	}()

	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestCloseAll(t *testing.T) {
	m := NewManager(time.Minute, nopLogger{}, nil)

	id := m.CreateIntake(newIntakeController())
	m.PutReschedule("tok-123", newRescheduleController("tok-123"))

	m.CloseAll()

	_, ok := m.GetIntake(id)
	assert.False(t, ok)
	_, ok = m.GetReschedule("tok-123")
	assert.False(t, ok)
}
