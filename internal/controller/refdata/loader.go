package refdata

import (
	"context"
	"sync"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
)

// Loader загрузчик справочных данных формы записи
//
// Хранит последние загруженные списки и гарантирует порядок для зависимых
// выборок: каждый запрос городов/врачей помечается номером поколения, и
// запоздавший ответ устаревшего запроса никогда не перезаписывает данные,
// относящиеся к более новому значению верхнего поля. Предыдущий in-flight
// запрос при этом отменяется через контекст.
//
// Ошибки транспорта деградируют в пустой список: отсутствие справочника
// не блокирует форму, соответствующий селектор просто остаётся пустым.
type Loader struct {
	client DirectoryClient
	log    Logger

	mu            sync.Mutex
	states        []string
	diseases      []domain.Disease
	cities        []string
	doctors       []domain.Doctor
	citiesGen     uint64
	doctorsGen    uint64
	cancelCities  context.CancelFunc
	cancelDoctors context.CancelFunc
}

// NewLoader создает новый загрузчик справочных данных
func NewLoader(client DirectoryClient, log Logger) *Loader {
	return &Loader{
		client: client,
		log:    log,
	}
}

// LoadStates загружает список штатов
// При ошибке транспорта возвращает пустой список
func (l *Loader) LoadStates(ctx context.Context) []string {
	states, err := l.client.ListStates(ctx)
	if err != nil {
		l.log.Warn("RefData: failed to load states, degrading to empty list: %v", err)
		states = []string{}
	}

	l.mu.Lock()
	l.states = states
	l.mu.Unlock()

	return states
}

// LoadDiseases загружает список заболеваний
// При ошибке транспорта возвращает пустой список
func (l *Loader) LoadDiseases(ctx context.Context) []domain.Disease {
	dtos, err := l.client.ListDiseases(ctx)
	if err != nil {
		l.log.Warn("RefData: failed to load diseases, degrading to empty list: %v", err)
		dtos = nil
	}

	diseases := make([]domain.Disease, 0, len(dtos))
	for _, d := range dtos {
		diseases = append(diseases, domain.Disease{ID: d.ID, Name: d.Disease})
	}

	l.mu.Lock()
	l.diseases = diseases
	l.mu.Unlock()

	return diseases
}

// LoadCities загружает города для выбранного штата
// Пустой штат очищает список без запроса. Результат устаревшего запроса
// (штат успел смениться) отбрасывается; возвращается актуальный список
func (l *Loader) LoadCities(ctx context.Context, state string) []string {
	l.mu.Lock()
	// Новый выбор отменяет предыдущий in-flight запрос
	if l.cancelCities != nil {
		l.cancelCities()
		l.cancelCities = nil
	}
	l.citiesGen++
	gen := l.citiesGen

	if state == "" {
		l.cities = []string{}
		l.mu.Unlock()
		return []string{}
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancelCities = cancel
	l.mu.Unlock()

	cities, err := l.client.ListCities(fetchCtx, state)
	if err != nil {
		l.log.Warn("RefData: failed to load cities for state=%q, degrading to empty list: %v", state, err)
		cities = []string{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.citiesGen {
		// Ответ относится к уже смененному штату
		l.log.Info("RefData: discarding stale cities response for state=%q", state)
		return append([]string(nil), l.cities...)
	}

	l.cities = cities
	l.cancelCities = nil
	return cities
}

// LoadDoctors загружает врачей для выбранных города и заболевания
// Пустой селектор очищает список без запроса; устаревшие ответы отбрасываются
func (l *Loader) LoadDoctors(ctx context.Context, city, disease string) []domain.Doctor {
	l.mu.Lock()
	if l.cancelDoctors != nil {
		l.cancelDoctors()
		l.cancelDoctors = nil
	}
	l.doctorsGen++
	gen := l.doctorsGen

	if city == "" || disease == "" {
		l.doctors = []domain.Doctor{}
		l.mu.Unlock()
		return []domain.Doctor{}
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancelDoctors = cancel
	l.mu.Unlock()

	dtos, err := l.client.FindDoctors(fetchCtx, city, disease)
	if err != nil {
		l.log.Warn("RefData: failed to load doctors for city=%q disease=%q, degrading to empty list: %v",
			city, disease, err)
		dtos = nil
	}

	doctors := make([]domain.Doctor, 0, len(dtos))
	for _, d := range dtos {
		doctors = append(doctors, domain.Doctor{ID: d.ID, Name: d.Name, Email: d.Email})
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.doctorsGen {
		l.log.Info("RefData: discarding stale doctors response for city=%q disease=%q", city, disease)
		return append([]domain.Doctor(nil), l.doctors...)
	}

	l.doctors = doctors
	l.cancelDoctors = nil
	return doctors
}

// States возвращает последний загруженный список штатов
func (l *Loader) States() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.states...)
}

// Cities возвращает последний загруженный список городов
func (l *Loader) Cities() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.cities...)
}

// Diseases возвращает последний загруженный список заболеваний
func (l *Loader) Diseases() []domain.Disease {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Disease(nil), l.diseases...)
}

// Doctors возвращает последний загруженный список врачей
func (l *Loader) Doctors() []domain.Doctor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Doctor(nil), l.doctors...)
}

// FindDoctorByName ищет врача по имени в последнем загруженном списке
func (l *Loader) FindDoctorByName(name string) (domain.Doctor, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.doctors {
		if d.Name == name {
			return d, true
		}
	}
	return domain.Doctor{}, false
}

// Close отменяет все in-flight запросы загрузчика
// Завершившийся после Close запрос становится no-op
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancelCities != nil {
		l.cancelCities()
		l.cancelCities = nil
	}
	if l.cancelDoctors != nil {
		l.cancelDoctors()
		l.cancelDoctors = nil
	}
	// Инвалидация поколений: всё, что было in-flight, будет отброшено
	l.citiesGen++
	l.doctorsGen++
}
