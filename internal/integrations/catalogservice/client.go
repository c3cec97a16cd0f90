package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу из каталога по идентификатору
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid service ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// GetServiceWithGracefulDegradation получает услугу из каталога с graceful degradation
// При недоступности CatalogService возвращает ErrServiceDegraded, что позволяет
// создать бронирование без обогащения названием и категорией услуги
func (c *Client) GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*Service, error) {
	c.log.Info("Fetching service service_id=%d from catalog", serviceID)

	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		// Критичная бизнес-ошибка (услуга не существует) пробрасывается дальше
		if errors.Is(err, ErrServiceNotFound) {
			c.log.Info("Service service_id=%d not found in catalog", serviceID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CatalogService unavailable, applying graceful degradation for service_id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: service_id=%d, error=%v", ErrServiceDegraded, serviceID, err)
	}

	c.log.Info("Successfully fetched service service_id=%d, category=%s", serviceID, service.Category)
	return service, nil
}
