package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
)

// HTTPError reports a non-success HTTP status. A 404 is terminal (the
// resource is permanently missing); every other status is retried.
type HTTPError struct {
	// StatusCode is the HTTP status returned by the server.
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// StorageError reports a local filesystem failure while persisting an
// image. Retrying will not fix a disk-level problem, so these abort the
// remaining attempts immediately.
type StorageError struct {
	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return "storage error: " + e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// failureClass is the closed set of download failure categories. Each
// category has a fixed policy: retry, or abort the remaining attempts.
type failureClass int

const (
	// failureUnknown covers anything unclassified. Retried; the loose
	// tolerance keeps a single odd failure from sinking a batch.
	failureUnknown failureClass = iota

	// failureTimeout is a per-attempt deadline expiry. Retried.
	failureTimeout

	// failureHTTP is a non-404 HTTP error status. Retried.
	failureHTTP

	// failureNotFound is an HTTP 404. Aborts: retrying a permanently
	// missing resource is pointless.
	failureNotFound

	// failureTransport is a network-level failure (connection reset,
	// DNS, broken proxy). Retried.
	failureTransport

	// failureStorage is a local write failure. Aborts.
	failureStorage
)

// classify maps an attempt error onto its failure class.
func classify(err error) failureClass {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusNotFound {
			return failureNotFound
		}
		return failureHTTP
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return failureStorage
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return failureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return failureTimeout
		}
		return failureTransport
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return failureTransport
	}

	return failureUnknown
}
