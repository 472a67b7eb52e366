package profileservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client клиент для работы с ProfileService
type Client struct {
	httpClient *resty.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, retryCount int, log Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// повторяем только сетевые ошибки и 5xx
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		httpClient: httpClient,
		log:        log,
	}
}

// GetProfile получает профиль пользователя по UID
func (c *Client) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	var profile Profile
	var errResp ErrorResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("uid", uid).
		SetResult(&profile).
		SetError(&errResp).
		Get("/internal/users/{uid}/profile")

	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	// Обработка статус-кодов
	switch resp.StatusCode() {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format: %s", ErrInvalidResponse, errResp.Message)
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode(), resp.String())
	}

	if profile.UID == "" {
		profile.UID = uid
	}

	return &profile, nil
}

// GetProfileWithGracefulDegradation получает профиль пользователя с graceful degradation
// При недоступности ProfileService возвращает ErrServiceDegraded, вызывающий продолжает без профиля
func (c *Client) GetProfileWithGracefulDegradation(ctx context.Context, uid string) (*Profile, error) {
	c.log.Info("Fetching profile for uid=%s", uid)

	profile, err := c.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			c.log.Info("No profile found for uid=%s", uid)
			return nil, err
		}

		c.log.Error("ProfileService unavailable, applying graceful degradation for uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: uid=%s, error=%v", ErrServiceDegraded, uid, err)
	}

	c.log.Info("Successfully fetched profile for uid=%s, department=%s", uid, profile.Department)
	return profile, nil
}
