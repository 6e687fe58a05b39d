package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestBadRequestError_Creation(t *testing.T) {
	err := NewBadRequestError("price must be positive")

	assert.Equal(t, "price must be positive", err.Error())

	be, ok := IsBadRequestError(err)
	assert.True(t, ok)
	assert.Equal(t, "price must be positive", be.Message)
}

func TestForbiddenError_Creation(t *testing.T) {
	err := NewForbiddenError("admin only")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "admin only", fe.Message)

	_, ok = IsForbiddenError(errors.New("other"))
	assert.False(t, ok)
}

func TestUnauthorizedError_Creation(t *testing.T) {
	err := NewUnauthorizedError("missing identity")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "missing identity", ue.Message)
}

func TestConflictError_Creation(t *testing.T) {
	err := NewConflictError("category already exists")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "category already exists", ce.Message)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestHTTPStatus_Mapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewBadRequestError("x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(NewUnauthorizedError("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(NewForbiddenError("x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(NewConflictError("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewInternalError("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("raw")))
}
