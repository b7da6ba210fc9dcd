package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/mock"
	nabslog "github.com/MikkoParkkola/nab-sub001/slog"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nab.Response, error) {
				return &nab.Response{
					StatusCode: 200,
					Proto:      "HTTP/2.0",
					Body:       []byte("<html>content</html>"),
				}, nil
			},
		}

		fetcher := nabslog.NewLoggingFetcher(inner, logger)
		resp, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.True(t, resp.OK())
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "proto=HTTP/2.0")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
		assert.Contains(t, output, "request_id=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nab.Response, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := nabslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})

	t.Run("request ids differ across fetches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nab.Response, error) {
				return &nab.Response{StatusCode: 200}, nil
			},
		}

		fetcher := nabslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		first := buf.String()
		buf.Reset()
		_, err = fetcher.Fetch(context.Background(), "https://example.com/b")
		require.NoError(t, err)

		assert.NotEqual(t, extractRequestID(t, first), extractRequestID(t, buf.String()))
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := nabslog.NewLoggingFetcher(inner, logger)
	require.NoError(t, fetcher.Close())
	assert.True(t, closeCalled)
}

func extractRequestID(t *testing.T, logLine string) string {
	t.Helper()
	const key = "request_id="
	i := bytes.Index([]byte(logLine), []byte(key))
	require.GreaterOrEqual(t, i, 0)
	rest := logLine[i+len(key):]
	for j := 0; j < len(rest); j++ {
		if rest[j] == ' ' || rest[j] == '\n' {
			return rest[:j]
		}
	}
	return rest
}
