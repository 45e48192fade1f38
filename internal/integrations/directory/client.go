package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс публикации метрик ошибок внешних сервисов
type Metrics interface {
	IncUpstreamError(upstream string)
}

// noopMetrics используется, когда метрики выключены
type noopMetrics struct{}

func (noopMetrics) IncUpstreamError(string) {}

const upstreamName = "directory"

// Client клиент справочного сервиса (штаты, города, заболевания, врачи)
// Все методы - идемпотентные read-only запросы без побочных эффектов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента справочного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger, m Metrics) *Client {
	if m == nil {
		m = noopMetrics{}
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: m,
	}
}

// ListStates возвращает список штатов
func (c *Client) ListStates(ctx context.Context) ([]string, error) {
	var states []string
	if err := c.getJSON(ctx, c.baseURL+"/admin/states", &states); err != nil {
		return nil, err
	}
	return states, nil
}

// ListCities возвращает список городов штата
func (c *Client) ListCities(ctx context.Context, state string) ([]string, error) {
	u := fmt.Sprintf("%s/admin/cities?%s", c.baseURL, url.Values{"state": {state}}.Encode())

	var cities []string
	if err := c.getJSON(ctx, u, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// ListDiseases возвращает список заболеваний/специализаций
func (c *Client) ListDiseases(ctx context.Context) ([]DiseaseDTO, error) {
	var diseases []DiseaseDTO
	if err := c.getJSON(ctx, c.baseURL+"/admin/getdisease", &diseases); err != nil {
		return nil, err
	}
	return diseases, nil
}

// FindDoctors возвращает врачей города с указанной специализацией
func (c *Client) FindDoctors(ctx context.Context, city, specialization string) ([]DoctorDTO, error) {
	u := fmt.Sprintf("%s/doctor/finddoctors?%s", c.baseURL, url.Values{
		"city":           {city},
		"Specialization": {specialization},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncUpstreamError(upstreamName)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncUpstreamError(upstreamName)
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: finddoctors returned %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Сервис исторически отвечает в двух форматах
	var wrapped doctorsResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Doctors != nil {
		return wrapped.Doctors, nil
	}

	var doctors []DoctorDTO
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return doctors, nil
}

// getJSON выполняет GET и декодирует JSON-ответ в out
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncUpstreamError(upstreamName)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncUpstreamError(upstreamName)
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s returned %d: %s", ErrUnavailable, req.URL.Path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
