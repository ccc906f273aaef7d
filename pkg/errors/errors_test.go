package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewNotFound("sale", nil), http.StatusNotFound},
		{NewValidation("bad input"), http.StatusBadRequest},
		{NewBadRequest("bad request", nil), http.StatusBadRequest},
		{NewUnauthorized("who are you"), http.StatusUnauthorized},
		{NewForbidden("not yours"), http.StatusForbidden},
		{NewInsufficientStock(stderrors.New("insufficient stock: Premium Dog Food")), http.StatusConflict},
		{NewInternal(stderrors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestInsufficientStockCarriesCause(t *testing.T) {
	cause := fmt.Errorf("insufficient stock: %s", "Antibiotic")
	err := NewInsufficientStock(cause)

	assert.Equal(t, ErrInsufficientStock, err.Code)
	assert.Equal(t, "insufficient stock: Antibiotic", err.Message)
	assert.Equal(t, "insufficient stock: Antibiotic", err.Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("record not found")
	err := NewNotFound("tutor", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "tutor not found: record not found", err.Error())
}

func TestIsCode(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewValidation("bad"))
	assert.True(t, IsCode(wrapped, ErrValidation))
	assert.False(t, IsCode(wrapped, ErrNotFound))
	assert.False(t, IsCode(stderrors.New("plain"), ErrValidation))
}
