package verification

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

// Gate шлюз подтверждения email перед отправкой формы записи
//
// Машина состояний: Unverified -> OtpRequested -> Verified.
// Редактирование email в любом состоянии возвращает шлюз в Unverified:
// подтверждение никогда не переносится на другой адрес.
// Инвариант: Verified выставляется только после успешного ответа сервиса
// на проверку кода
type Gate struct {
	client BookingServiceClient
	log    Logger

	mu    sync.Mutex
	state domain.VerificationState
}

// NewGate создает шлюз в состоянии Unverified
func NewGate(client BookingServiceClient, log Logger) *Gate {
	return &Gate{
		client: client,
		log:    log,
		state: domain.VerificationState{
			Status: domain.VerificationUnverified,
		},
	}
}

// RequestCode запрашивает отправку одноразового кода на email
// При успехе шлюз переходит в OtpRequested; при сбое остаётся в текущем
// состоянии, ошибка восстановимая
func (g *Gate) RequestCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	if err := g.client.RequestOTP(ctx, email); err != nil {
		g.log.Warn("Verification: failed to send code to %s: %v", email, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	g.mu.Lock()
	g.state.Email = email
	g.state.Status = domain.VerificationOtpRequested
	g.mu.Unlock()

	g.log.Info("Verification: code sent to %s", email)
	return nil
}

// VerifyCode проверяет введённый пользователем код
// Несовпадение кода оставляет шлюз в OtpRequested: код можно ввести повторно
func (g *Gate) VerifyCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeRequired
	}

	g.mu.Lock()
	if g.state.Status != domain.VerificationOtpRequested {
		g.mu.Unlock()
		return ErrNoCodeRequested
	}
	email := g.state.Email
	g.mu.Unlock()

	ok, err := g.client.VerifyOTP(ctx, email, code)
	if err != nil {
		g.log.Warn("Verification: verify call failed for %s: %v", email, err)
		return fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}
	if !ok {
		g.log.Info("Verification: code rejected for %s", email)
		return ErrCodeMismatch
	}

	g.mu.Lock()
	// Email мог быть отредактирован, пока выполнялась проверка -
	// в этом случае подтверждение не засчитывается
	if g.state.Status != domain.VerificationOtpRequested || g.state.Email != email {
		g.mu.Unlock()
		return ErrNoCodeRequested
	}
	g.state.Status = domain.VerificationVerified
	g.mu.Unlock()

	g.log.Info("Verification: email %s verified", email)
	return nil
}

// EmailChanged уведомляет шлюз об изменении поля email
// Смена адреса сбрасывает подтверждение: для нового адреса требуется
// повторная верификация
func (g *Gate) EmailChanged(email string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Status == domain.VerificationUnverified {
		return
	}
	if strings.TrimSpace(email) == g.state.Email {
		return
	}

	g.log.Info("Verification: email changed, resetting verification state")
	g.state.Reset()
}

// IsVerified возвращает true, если email подтверждён
func (g *Gate) IsVerified() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.IsVerified()
}

// State возвращает копию текущего состояния шлюза
func (g *Gate) State() domain.VerificationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Reset возвращает шлюз в начальное состояние
// Вызывается после успешной записи на приём
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Reset()
}
