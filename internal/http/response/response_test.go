package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Title    string `validate:"required,min=5,max=10"`
	Email    string `validate:"required,email"`
	Category string `validate:"oneof=food-pantry senior-support"`
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(form{Title: "abc", Email: "nope", Category: "other"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field title must be at least 5 characters")
	assert.Contains(t, resp.Error, "field email must be a valid email address")
	assert.Contains(t, resp.Error, "field category must be one of: food-pantry, senior-support")
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]int{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
}
