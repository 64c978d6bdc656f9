package service

import (
	"errors"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/evidence"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/platform/llm"
)

// IsRateLimited classifies transport-level 429s from either external
// dependency. Only these are retried; everything else propagates immediately.
func IsRateLimited(err error) bool {
	var se *evidence.StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests
	}
	var ge *llm.StatusError
	if errors.As(err, &ge) {
		return ge.StatusCode == http.StatusTooManyRequests
	}
	return false
}
