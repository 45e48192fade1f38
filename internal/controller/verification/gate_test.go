package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingClient struct {
	requestOTPFunc func(ctx context.Context, email string) error
	verifyOTPFunc  func(ctx context.Context, email, code string) (bool, error)
}

func (f *fakeBookingClient) RequestOTP(ctx context.Context, email string) error {
	return f.requestOTPFunc(ctx, email)
}

func (f *fakeBookingClient) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	return f.verifyOTPFunc(ctx, email, code)
}

func TestRequestCodeRequiresEmail(t *testing.T) {
	gate := NewGate(&fakeBookingClient{}, nopLogger{})

	assert.ErrorIs(t, gate.RequestCode(context.Background(), ""), ErrEmailRequired)
	assert.ErrorIs(t, gate.RequestCode(context.Background(), "   "), ErrEmailRequired)
}

func TestRequestCodeSendFailureKeepsState(t *testing.T) {
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error {
			return errors.New("smtp down")
		},
	}
	gate := NewGate(client, nopLogger{})

	err := gate.RequestCode(context.Background(), "user@example.com")

	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Equal(t, domain.VerificationUnverified, gate.State().Status)
}

func TestVerifyCodeRequiresRequestedCode(t *testing.T) {
	gate := NewGate(&fakeBookingClient{}, nopLogger{})

	assert.ErrorIs(t, gate.VerifyCode(context.Background(), ""), ErrCodeRequired)
	assert.ErrorIs(t, gate.VerifyCode(context.Background(), "123456"), ErrNoCodeRequested)
}

func TestVerifyCodeMismatchAllowsRetry(t *testing.T) {
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error { return nil },
		verifyOTPFunc: func(ctx context.Context, email, code string) (bool, error) {
			return code == "123456", nil
		},
	}
	gate := NewGate(client, nopLogger{})
	require.NoError(t, gate.RequestCode(context.Background(), "user@example.com"))

	err := gate.VerifyCode(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Equal(t, domain.VerificationOtpRequested, gate.State().Status)
	assert.False(t, gate.IsVerified())

	// Код можно ввести повторно без нового запроса
	require.NoError(t, gate.VerifyCode(context.Background(), "123456"))
	assert.True(t, gate.IsVerified())
}

func TestVerifyCodeTransportFailure(t *testing.T) {
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error { return nil },
		verifyOTPFunc: func(ctx context.Context, email, code string) (bool, error) {
			return false, errors.New("upstream down")
		},
	}
	gate := NewGate(client, nopLogger{})
	require.NoError(t, gate.RequestCode(context.Background(), "user@example.com"))

	err := gate.VerifyCode(context.Background(), "123456")

	assert.ErrorIs(t, err, ErrVerifyFailed)
	assert.False(t, gate.IsVerified())
}

func TestEmailChangedResetsVerification(t *testing.T) {
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error { return nil },
		verifyOTPFunc: func(ctx context.Context, email, code string) (bool, error) {
			return true, nil
		},
	}
	gate := NewGate(client, nopLogger{})
	require.NoError(t, gate.RequestCode(context.Background(), "user@example.com"))
	require.NoError(t, gate.VerifyCode(context.Background(), "123456"))
	require.True(t, gate.IsVerified())

	// Тот же адрес не сбрасывает подтверждение
	gate.EmailChanged("user@example.com")
	assert.True(t, gate.IsVerified())

	// Новый адрес требует повторной верификации
	gate.EmailChanged("other@example.com")
	assert.False(t, gate.IsVerified())
	assert.Equal(t, domain.VerificationUnverified, gate.State().Status)
}

// Подтверждение не засчитывается, если email сменили, пока проверка кода
// выполнялась на сервисе.
func TestVerifyCodeIgnoredWhenEmailChangedMidFlight(t *testing.T) {
	var gate *Gate
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error { return nil },
		verifyOTPFunc: func(ctx context.Context, email, code string) (bool, error) {
			gate.EmailChanged("other@example.com")
			return true, nil
		},
	}
	gate = NewGate(client, nopLogger{})
	require.NoError(t, gate.RequestCode(context.Background(), "user@example.com"))

	err := gate.VerifyCode(context.Background(), "123456")

	assert.ErrorIs(t, err, ErrNoCodeRequested)
	assert.False(t, gate.IsVerified())
}

func TestReset(t *testing.T) {
	client := &fakeBookingClient{
		requestOTPFunc: func(ctx context.Context, email string) error { return nil },
		verifyOTPFunc: func(ctx context.Context, email, code string) (bool, error) {
			return true, nil
		},
	}
	gate := NewGate(client, nopLogger{})
	require.NoError(t, gate.RequestCode(context.Background(), "user@example.com"))
	require.NoError(t, gate.VerifyCode(context.Background(), "123456"))

	gate.Reset()

	assert.False(t, gate.IsVerified())
	assert.Equal(t, domain.VerificationUnverified, gate.State().Status)
}
