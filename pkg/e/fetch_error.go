package e

import "fmt"

// FetchKind классифицирует причину неудачного исходящего запроса.
type FetchKind int

const (
	FetchNetwork FetchKind = iota
	FetchTimeout
	FetchHTTPStatus
)

func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchTimeout:
		return "timeout"
	case FetchHTTPStatus:
		return "http status"
	default:
		return "unknown"
	}
}

// FetchError — типизированная ошибка шлюза запросов, возвращаемая
// после исчерпания всех попыток. Не пересекает границу шлюза в виде panic.
type FetchError struct {
	URL        string
	Kind       FetchKind
	StatusCode int // заполняется только для FetchHTTPStatus
	Attempts   int
	Err        error
}

func (f *FetchError) Error() string {
	if f.Kind == FetchHTTPStatus {
		return fmt.Sprintf("fetch %s: %s %d after %d attempt(s)", f.URL, f.Kind, f.StatusCode, f.Attempts)
	}
	return fmt.Sprintf("fetch %s: %s error after %d attempt(s): %v", f.URL, f.Kind, f.Attempts, f.Err)
}

func (f *FetchError) Unwrap() error {
	return f.Err
}

func NewNetworkError(url string, attempts int, err error) *FetchError {
	return &FetchError{URL: url, Kind: FetchNetwork, Attempts: attempts, Err: err}
}

func NewTimeoutError(url string, attempts int, err error) *FetchError {
	return &FetchError{URL: url, Kind: FetchTimeout, Attempts: attempts, Err: err}
}

func NewHTTPStatusError(url string, statusCode int, attempts int) *FetchError {
	return &FetchError{URL: url, Kind: FetchHTTPStatus, StatusCode: statusCode, Attempts: attempts}
}
