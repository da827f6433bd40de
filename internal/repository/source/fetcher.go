package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxBodySize = 64 << 20

// ErrBodyTooLarge - ответ источника больше maxBodySize
var ErrBodyTooLarge = errors.New("source body exceeds size limit")

// fetcher читает статический файл с диска или по http(s) URL
type fetcher struct {
	httpClient *http.Client
	maxBody    int64
	logger     *zap.Logger
}

func newFetcher(timeout time.Duration, logger *zap.Logger) *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodySize,
		logger:     logger,
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (f *fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("empty source location")
	}
	if !isRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", location, err)
		}
		f.logger.Debug("Source file read", zap.String("path", location), zap.Int("size", len(data)))
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", location, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("fetch %s: %w (%d bytes)", location, ErrBodyTooLarge, f.maxBody)
	}

	f.logger.Debug("Source fetched",
		zap.String("url", location),
		zap.Int("size", len(data)),
		zap.Duration("duration", time.Since(start)))

	return data, nil
}
