package refdata

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HSC-AppointmentService/internal/domain"
	"github.com/m04kA/HSC-AppointmentService/internal/integrations/directory"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeDirectoryClient struct {
	listStatesFunc   func(ctx context.Context) ([]string, error)
	listCitiesFunc   func(ctx context.Context, state string) ([]string, error)
	listDiseasesFunc func(ctx context.Context) ([]directory.DiseaseDTO, error)
	findDoctorsFunc  func(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error)
}

func (f *fakeDirectoryClient) ListStates(ctx context.Context) ([]string, error) {
	return f.listStatesFunc(ctx)
}

func (f *fakeDirectoryClient) ListCities(ctx context.Context, state string) ([]string, error) {
	return f.listCitiesFunc(ctx, state)
}

func (f *fakeDirectoryClient) ListDiseases(ctx context.Context) ([]directory.DiseaseDTO, error) {
	return f.listDiseasesFunc(ctx)
}

func (f *fakeDirectoryClient) FindDoctors(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error) {
	return f.findDoctorsFunc(ctx, city, specialization)
}

func TestLoadStates(t *testing.T) {
	client := &fakeDirectoryClient{
		listStatesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Karnataka", "Kerala"}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	states := loader.LoadStates(context.Background())

	assert.Equal(t, []string{"Karnataka", "Kerala"}, states)
	assert.Equal(t, []string{"Karnataka", "Kerala"}, loader.States())
}

func TestLoadStatesDegradesToEmptyOnError(t *testing.T) {
	client := &fakeDirectoryClient{
		listStatesFunc: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}
	loader := NewLoader(client, nopLogger{})

	states := loader.LoadStates(context.Background())

	assert.Empty(t, states)
}

func TestLoadDiseases(t *testing.T) {
	client := &fakeDirectoryClient{
		listDiseasesFunc: func(ctx context.Context) ([]directory.DiseaseDTO, error) {
			return []directory.DiseaseDTO{{ID: "d1", Disease: "Cardiology"}}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	diseases := loader.LoadDiseases(context.Background())

	require.Len(t, diseases, 1)
	assert.Equal(t, domain.Disease{ID: "d1", Name: "Cardiology"}, diseases[0])
}

func TestLoadCitiesEmptyStateClearsWithoutRequest(t *testing.T) {
	calls := 0
	client := &fakeDirectoryClient{
		listCitiesFunc: func(ctx context.Context, state string) ([]string, error) {
			calls++
			return []string{"Bangalore"}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	loader.LoadCities(context.Background(), "Karnataka")
	require.Equal(t, []string{"Bangalore"}, loader.Cities())

	cities := loader.LoadCities(context.Background(), "")

	assert.Empty(t, cities)
	assert.Empty(t, loader.Cities())
	assert.Equal(t, 1, calls)
}

// Запоздавший ответ для уже смененного штата не должен перезаписать
// города, загруженные для актуального выбора.
func TestLoadCitiesDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	inFlight := make(chan struct{})
	client := &fakeDirectoryClient{
		listCitiesFunc: func(ctx context.Context, state string) ([]string, error) {
			if state == "Karnataka" {
				close(inFlight)
				<-release
				return []string{"Bangalore"}, nil
			}
			return []string{"Kochi"}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stale := loader.LoadCities(context.Background(), "Karnataka")
		// Устаревший вызов получает актуальный список, а не свой
		assert.Equal(t, []string{"Kochi"}, stale)
	}()
	<-inFlight

	// Второй выбор завершается, пока первый запрос ещё висит
	fresh := loader.LoadCities(context.Background(), "Kerala")
	require.Equal(t, []string{"Kochi"}, fresh)

	close(release)
	wg.Wait()

	assert.Equal(t, []string{"Kochi"}, loader.Cities())
}

func TestLoadDoctorsRequiresBothSelectors(t *testing.T) {
	calls := 0
	client := &fakeDirectoryClient{
		findDoctorsFunc: func(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error) {
			calls++
			return nil, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	assert.Empty(t, loader.LoadDoctors(context.Background(), "Bangalore", ""))
	assert.Empty(t, loader.LoadDoctors(context.Background(), "", "Cardiology"))
	assert.Equal(t, 0, calls)
}

func TestLoadDoctorsDegradesToEmptyOnError(t *testing.T) {
	client := &fakeDirectoryClient{
		findDoctorsFunc: func(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error) {
			return nil, errors.New("timeout")
		},
	}
	loader := NewLoader(client, nopLogger{})

	doctors := loader.LoadDoctors(context.Background(), "Bangalore", "Cardiology")

	assert.Empty(t, doctors)
}

func TestFindDoctorByName(t *testing.T) {
	client := &fakeDirectoryClient{
		findDoctorsFunc: func(ctx context.Context, city, specialization string) ([]directory.DoctorDTO, error) {
			return []directory.DoctorDTO{
				{ID: "doc1", Name: "Dr. Rao", Email: "rao@hospital.example"},
			}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})
	loader.LoadDoctors(context.Background(), "Bangalore", "Cardiology")

	doctor, ok := loader.FindDoctorByName("Dr. Rao")
	require.True(t, ok)
	assert.Equal(t, "rao@hospital.example", doctor.Email)

	_, ok = loader.FindDoctorByName("Dr. Unknown")
	assert.False(t, ok)
}

// После Close завершившийся in-flight запрос не должен менять данные.
func TestCloseInvalidatesInFlightRequests(t *testing.T) {
	release := make(chan struct{})
	inFlight := make(chan struct{})
	client := &fakeDirectoryClient{
		listCitiesFunc: func(ctx context.Context, state string) ([]string, error) {
			close(inFlight)
			<-release
			return []string{"Bangalore"}, nil
		},
	}
	loader := NewLoader(client, nopLogger{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loader.LoadCities(context.Background(), "Karnataka")
	}()

	<-inFlight
	loader.Close()
	close(release)
	wg.Wait()

	assert.Empty(t, loader.Cities())
}
