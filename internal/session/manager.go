package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс публикации метрик реестра
type Metrics interface {
	SetActiveSessions(kind string, n int)
}

// noopMetrics используется, когда метрики выключены
type noopMetrics struct{}

func (noopMetrics) SetActiveSessions(string, int) {}

type intakeEntry struct {
	controller *intake.Controller
	lastAccess time.Time
}

type rescheduleEntry struct {
	controller *reschedule.Controller
	lastAccess time.Time
}

// Manager in-memory реестр живых сессий workflow
//
// Сессии формы записи адресуются выданным uuid, сессии переноса - самим
// токеном переноса. Контроллеры живут только в памяти: они держат
// cancel-функции in-flight запросов и не сериализуются. Истёкшие сессии
// вычищает janitor - отменяемый повторяющийся таймер с гарантированной
// остановкой при завершении сервиса
type Manager struct {
	ttl     time.Duration
	log     Logger
	metrics Metrics

	mu          sync.Mutex
	intakes     map[string]*intakeEntry
	reschedules map[string]*rescheduleEntry
}

// NewManager создает реестр сессий с указанным TTL
func NewManager(ttl time.Duration, log Logger, metrics Metrics) *Manager {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Manager{
		ttl:         ttl,
		log:         log,
		metrics:     metrics,
		intakes:     make(map[string]*intakeEntry),
		reschedules: make(map[string]*rescheduleEntry),
	}
}

// CreateIntake регистрирует сессию формы записи и возвращает её id
func (m *Manager) CreateIntake(c *intake.Controller) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.intakes[id] = &intakeEntry{controller: c, lastAccess: time.Now()}
	n := len(m.intakes)
	m.mu.Unlock()

	m.metrics.SetActiveSessions("intake", n)
	m.log.Info("Session: intake session %s created (%d active)", id, n)
	return id
}

// GetIntake возвращает контроллер сессии формы записи и продлевает её TTL
func (m *Manager) GetIntake(id string) (*intake.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.intakes[id]
	if !ok {
		return nil, false
	}
	entry.lastAccess = time.Now()
	return entry.controller, true
}

// PutReschedule регистрирует сессию переноса под её токеном
func (m *Manager) PutReschedule(token string, c *reschedule.Controller) {
	m.mu.Lock()
	m.reschedules[token] = &rescheduleEntry{controller: c, lastAccess: time.Now()}
	n := len(m.reschedules)
	m.mu.Unlock()

	m.metrics.SetActiveSessions("reschedule", n)
}

// GetReschedule возвращает контроллер сессии переноса и продлевает её TTL
func (m *Manager) GetReschedule(token string) (*reschedule.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.reschedules[token]
	if !ok {
		return nil, false
	}
	entry.lastAccess = time.Now()
	return entry.controller, true
}

// DropReschedule удаляет сессию переноса (недействительный токен)
func (m *Manager) DropReschedule(token string) {
	m.mu.Lock()
	entry, ok := m.reschedules[token]
	if ok {
		delete(m.reschedules, token)
	}
	n := len(m.reschedules)
	m.mu.Unlock()

	if ok {
		entry.controller.Close()
		m.metrics.SetActiveSessions("reschedule", n)
	}
}

// Cleanup вычищает сессии, к которым не обращались дольше TTL
// In-flight запросы вычищенных сессий отменяются через Close контроллера
func (m *Manager) Cleanup() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var expiredIntakes []*intake.Controller
	for id, entry := range m.intakes {
		if entry.lastAccess.Before(cutoff) {
			expiredIntakes = append(expiredIntakes, entry.controller)
			delete(m.intakes, id)
		}
	}
	var expiredReschedules []*reschedule.Controller
	for token, entry := range m.reschedules {
		if entry.lastAccess.Before(cutoff) {
			expiredReschedules = append(expiredReschedules, entry.controller)
			delete(m.reschedules, token)
		}
	}
	nIntakes := len(m.intakes)
	nReschedules := len(m.reschedules)
	m.mu.Unlock()

	for _, c := range expiredIntakes {
		c.Close()
	}
	for _, c := range expiredReschedules {
		c.Close()
	}

	if len(expiredIntakes) > 0 || len(expiredReschedules) > 0 {
		m.log.Info("Session: evicted %d intake and %d reschedule sessions",
			len(expiredIntakes), len(expiredReschedules))
	}

	m.metrics.SetActiveSessions("intake", nIntakes)
	m.metrics.SetActiveSessions("reschedule", nReschedules)
}

// RunJanitor запускает периодическую очистку до закрытия stopCh
// Запускается в отдельной горутине; таймер останавливается гарантированно
func (m *Manager) RunJanitor(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-stopCh:
			m.log.Info("Session: janitor stopped")
			return
		}
	}
}

// CloseAll закрывает все живые сессии (graceful shutdown)
func (m *Manager) CloseAll() {
	m.mu.Lock()
	intakes := m.intakes
	reschedules := m.reschedules
	m.intakes = make(map[string]*intakeEntry)
	m.reschedules = make(map[string]*rescheduleEntry)
	m.mu.Unlock()

	for _, entry := range intakes {
		entry.controller.Close()
	}
	for _, entry := range reschedules {
		entry.controller.Close()
	}
}
