package catalog

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/DRSN-tech/pharmacrawl/internal/cfg"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/jitter"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

// Ограничение на размер одного ответа, страницы каталога и
// изображения заметно меньше.
const maxBodyBytes = 10 << 20

// Фиксированная подпись на случай пустого пула.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Встроенный пул браузерных подписей. Пул фиксирован и обновляется
// руками, внешний источник подписей не подключается.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:126.0) Gecko/20100101 Firefox/126.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
}

// Client — единственная точка исходящих запросов к каталогу.
// Вся антиблокировочная политика живёт здесь: смена браузерной
// подписи, вежливые паузы по назначению запроса и повторные
// попытки с экспоненциальной задержкой.
type Client struct {
	httpClient *http.Client
	cfg        *cfg.GatewayCfg
	userAgents []string
	log        logger.Logger

	mu  sync.Mutex
	rng *rand.Rand

	// sleep подменяется в тестах, чтобы проверять задержки без ожидания
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(gatewayCfg *cfg.GatewayCfg, log logger.Logger) *Client {
	userAgents := gatewayCfg.UserAgents
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}

	return &Client{
		httpClient: &http.Client{Timeout: gatewayCfg.RequestTimeout},
		cfg:        gatewayCfg,
		userAgents: userAgents,
		log:        log,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:      contextSleep,
	}
}

// Fetch выполняет GET с повторными попытками. Перед каждой попыткой
// выдерживается вежливая пауза полосы purpose, между попытками
// растёт экспоненциальная задержка. После исчерпания попыток
// возвращается типизированная e.FetchError.
func (c *Client) Fetch(ctx context.Context, url string, purpose usecase.FetchPurpose) (*usecase.FetchRes, error) {
	const (
		op          = "catalog.Client.Fetch"
		baseBackoff = 1 * time.Second
		maxBackoff  = 30 * time.Second
	)

	maxRetries := c.cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr *e.FetchError

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.sleep(ctx, c.delayFor(purpose)); err != nil {
			return nil, e.Wrap(op, err)
		}

		res, fetchErr := c.doRequest(ctx, url, attempt+1)
		if fetchErr == nil {
			return res, nil
		}
		lastErr = fetchErr

		if attempt == maxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		c.log.Warnf("attempt %d failed for %s (%s), retrying in %v", attempt+1, url, purpose, sleepTime)

		if err := c.sleep(ctx, sleepTime); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	lastErr.Attempts = maxRetries

	return nil, e.Wrap(op, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string, attempt int) (*usecase.FetchRes, *e.FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, e.NewNetworkError(url, attempt, err)
	}

	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, e.NewTimeoutError(url, attempt, err)
		}

		return nil, e.NewNetworkError(url, attempt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, e.NewHTTPStatusError(url, resp.StatusCode, attempt)
	}

	// читается на байт больше лимита: перелив отличается от усечения
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, e.NewTimeoutError(url, attempt, err)
		}

		return nil, e.NewNetworkError(url, attempt, err)
	}

	if len(body) > maxBodyBytes {
		return nil, e.NewNetworkError(url, attempt, e.ErrResponseTooLarge)
	}

	return usecase.NewFetchRes(body, resp.StatusCode, resp.Header.Get("Content-Type")), nil
}

// applyHeaders выставляет браузерную подпись запроса. Подпись
// выбирается заново на каждый запрос. Accept-Encoding не трогаем,
// иначе транспорт перестаёт сам распаковывать gzip.
func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.pickUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "max-age=0")
}

func (c *Client) pickUserAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.userAgents) == 0 {
		return defaultUserAgent
	}

	return c.userAgents[c.rng.Intn(len(c.userAgents))]
}

// delayFor тянет паузу из полосы, соответствующей назначению запроса.
func (c *Client) delayFor(purpose usecase.FetchPurpose) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch purpose {
	case usecase.PurposeCategoryPage:
		return jitter.UniformBetweenWithSeed(c.cfg.CategoryDelayMin, c.cfg.CategoryDelayMax, c.rng)
	case usecase.PurposeImage:
		return jitter.UniformBetweenWithSeed(c.cfg.ImageDelayMin, c.cfg.ImageDelayMax, c.rng)
	default:
		return jitter.UniformBetweenWithSeed(c.cfg.ItemDelayMin, c.cfg.ItemDelayMax, c.rng)
	}
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
