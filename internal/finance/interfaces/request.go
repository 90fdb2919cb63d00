package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

const dateLayout = "2006-01-02"

var (
	ErrNilService   = errors.New("service and validator must not be nil")
	ErrNilResponder = errors.New("response functions must not be nil")
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, financeErrors.NewFieldValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// queryInt returns 0 for an absent parameter so the service applies its default.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, financeErrors.NewFieldValidationError(name, "must be a positive integer")
	}
	return value, nil
}

// queryTime accepts RFC3339 or a bare date; a bare end date covers the whole day.
func queryTime(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, financeErrors.NewFieldValidationError(name, "must be RFC3339 or YYYY-MM-DD")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func pagingParams(r *http.Request) (page, size int, err error) {
	ve := &financeErrors.ValidationErrors{}
	size, sizeErr := queryInt(r, "pageSize")
	switch {
	case sizeErr != nil:
		ve.Add(sizeErr)
	case size > domain.MaxPageSize:
		ve.Add(financeErrors.NewFieldValidationError("pageSize", fmt.Sprintf("must be at most %d", domain.MaxPageSize)))
	}
	page, pageErr := queryInt(r, "pageNumber")
	switch {
	case pageErr != nil:
		ve.Add(pageErr)
	case sizeErr == nil && page > domain.MaxPageNumber(size):
		ve.Add(financeErrors.NewFieldValidationError("pageNumber", fmt.Sprintf("must be at most %d", domain.MaxPageNumber(size))))
	}
	if ve.HasErrors() {
		return 0, 0, ve
	}
	return page, size, nil
}

// decodeAndValidate fills req from the JSON body and checks its validate tags.
func decodeAndValidate(r *http.Request, v *validation.Validator, req interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return financeErrors.NewValidationError("Invalid request body")
	}
	fieldErrors := v.Validate(req)
	if fieldErrors == nil {
		return nil
	}
	ve := &financeErrors.ValidationErrors{}
	for _, fe := range fieldErrors {
		ve.Add(financeErrors.NewFieldValidationError(fe.Field, fe.Message))
	}
	return ve
}

func writeRequestError(respondError func(w http.ResponseWriter, status int, message string, errors ...[]string), w http.ResponseWriter, err error) {
	var validationErrors *financeErrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErrors.Messages())
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}
