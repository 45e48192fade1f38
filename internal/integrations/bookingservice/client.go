package bookingservice

import (
	"bytes"
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

const upstreamName = "bookingservice"

// Client клиент для работы с booking-сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента booking-сервиса
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

// RequestOTP запрашивает отправку одноразового кода на указанный email
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	c.log.Info("Requesting OTP for email=%s", email)

	resp, err := c.postJSON(ctx, c.baseURL+"/admin/send-otp", OTPRequest{Email: email})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= http.StatusInternalServerError:
		c.metrics.IncUpstreamError(upstreamName)
		return fmt.Errorf("%w: send-otp returned %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: send-otp returned %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
}

// VerifyOTP проверяет одноразовый код
// Несовпадение кода - не ошибка транспорта: возвращается (false, nil)
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	resp, err := c.postJSON(ctx, c.baseURL+"/admin/verify-otp", OTPVerifyRequest{Email: email, Otp: code})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		c.metrics.IncUpstreamError(upstreamName)
		return false, fmt.Errorf("%w: verify-otp returned %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: verify-otp returned %d: %s", ErrRejected, resp.StatusCode, string(body))
	}

	var result OTPVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return result.Success, nil
}

// GetSlots получает авторитетный набор слотов врача на дату
func (c *Client) GetSlots(ctx context.Context, doctorEmail, date string) (*SlotsResponse, error) {
	u := fmt.Sprintf("%s/admin/slots?%s", c.baseURL, url.Values{
		"doctorEmail": {doctorEmail},
		"date":        {date},
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
		return nil, fmt.Errorf("%w: slots returned %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var result SlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// CreateAppointment создает запись на приём
func (c *Client) CreateAppointment(ctx context.Context, payload *AppointmentPayload) error {
	c.log.Info("Creating appointment: doctor=%s, date=%s, time=%s", payload.Doctor, payload.Date, payload.Time)

	resp, err := c.postJSON(ctx, c.baseURL+"/api/appointment", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode >= http.StatusInternalServerError:
		c.metrics.IncUpstreamError(upstreamName)
		return fmt.Errorf("%w: appointment returned %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: appointment returned %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
}

// ResolveReschedule обменивает токен переноса на данные приёма и слоты
// Если date не nil, слоты возвращаются для этой даты-кандидата
func (c *Client) ResolveReschedule(ctx context.Context, token string, date *string) (*RescheduleResponse, error) {
	u := fmt.Sprintf("%s/api/reschedule/%s", c.baseURL, url.PathEscape(token))
	if date != nil {
		u += "?date=" + url.QueryEscape(*date)
	}

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

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusGone, http.StatusBadRequest:
		return nil, ErrTokenInvalid
	default:
		c.metrics.IncUpstreamError(upstreamName)
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: reschedule resolve returned %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var result RescheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// SubmitReschedule фиксирует перенос приёма на новую дату и время
// 409 означает, что слот был занят параллельной записью: возвращается
// *ConflictError со свежим списком слотов из ответа сервиса
func (c *Client) SubmitReschedule(ctx context.Context, token, date, timeStr string) error {
	c.log.Info("Submitting reschedule: date=%s, time=%s", date, timeStr)

	u := fmt.Sprintf("%s/api/reschedule/%s", c.baseURL, url.PathEscape(token))
	resp, err := c.postJSON(ctx, u, ReschedulePayload{Date: date, Time: timeStr})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		var conflict ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
			return fmt.Errorf("%w: failed to decode conflict response: %v", ErrInvalidResponse, err)
		}
		return &ConflictError{
			Message:        conflict.Message,
			AvailableSlots: conflict.AvailableSlots,
		}
	case http.StatusNotFound, http.StatusGone:
		return ErrTokenInvalid
	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			c.metrics.IncUpstreamError(upstreamName)
			return fmt.Errorf("%w: reschedule returned %d", ErrUnavailable, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: reschedule returned %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
}

// postJSON выполняет POST с JSON-телом
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncUpstreamError(upstreamName)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}

	return resp, nil
}
