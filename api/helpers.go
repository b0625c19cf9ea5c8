package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/rowguard/rowguard"
	"github.com/rowguard/rowguard/decisionlog"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, decisionlog.ErrNotFound) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, rowguard.ErrMalformedACE) || errors.Is(err, rowguard.ErrNilRequest) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, rowguard.ErrAccessDenied) {
		return forge.Forbidden(err.Error())
	}
	return err
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
