package providers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/daily-weather-report/internal/weather"
)

// maxBodyExcerpt caps how much of a failing response body is carried in an
// UpstreamError.
const maxBodyExcerpt = 500

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes one HTTP request through the circuit breaker. There are
// no retries: each call issues at most one upstream request. Non-2xx statuses
// count as failures for the breaker and surface as UpstreamError.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			excerpt := readExcerpt(resp.Body)
			resp.Body.Close()
			return nil, &weather.UpstreamError{
				StatusCode:  resp.StatusCode,
				BodyExcerpt: excerpt,
			}
		}

		return resp, nil
	})
	if err != nil {
		var ue *weather.UpstreamError
		if errors.As(err, &ue) {
			return nil, ue
		}
		// Transport failures, timeouts, and an open circuit are all
		// upstream-class failures.
		return nil, &weather.UpstreamError{Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

func readExcerpt(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxBodyExcerpt))
	if err != nil {
		return ""
	}
	return string(b)
}
