package lib

import (
	"errors"
	"lojastreet_server/structs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// TestExtractAndValidateBody_Valid verifies a well-formed product body decodes.
func TestExtractAndValidateBody_Valid(t *testing.T) {
	body, err := ExtractAndValidateBody[structs.ProductRequest](newJSONRequest(
		`{"name":"Hoodie","category":"masculino","price":169.9,"discountPrice":119.9,"imageUrl":"images/a.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hoodie", body.Name)
	require.NotNil(t, body.Price)
	assert.InDelta(t, 169.9, *body.Price, 1e-9)
	require.NotNil(t, body.DiscountPrice)
	assert.Nil(t, body.IsActive)
}

// TestExtractAndValidateBody_FieldErrors verifies tag failures use json names.
func TestExtractAndValidateBody_FieldErrors(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](newJSONRequest(
		`{"name":"Ab","category":"masculino","price":-1,"imageUrl":""}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]string{}
	for _, fe := range ve.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be at least 3 characters", fields["name"])
	assert.Equal(t, "must be greater than or equal to 0", fields["price"])
	assert.Equal(t, "is required", fields["imageUrl"])
}

// TestExtractAndValidateBody_Malformed verifies bad JSON and unknown fields are validation errors.
func TestExtractAndValidateBody_Malformed(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.DiscountRequest](newJSONRequest(`{"discountPrice":`))
	assert.True(t, IsValidationError(err))

	_, err = ExtractAndValidateBody[structs.DiscountRequest](newJSONRequest(`{"discount":10}`))
	assert.True(t, IsValidationError(err))

	_, err = ExtractAndValidateBody[structs.DiscountRequest](newJSONRequest(``))
	assert.True(t, IsValidationError(err))
}

// TestExtractAndValidateBody_PriceUpperBound verifies prices that do not fit numeric(10,2) are rejected.
func TestExtractAndValidateBody_PriceUpperBound(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](newJSONRequest(
		`{"name":"Hoodie","category":"masculino","price":100000000,"imageUrl":"images/a.jpg"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "price", ve.Errors[0].Field)
	assert.Equal(t, "must be less than or equal to 99999999.99", ve.Errors[0].Message)

	_, err = ExtractAndValidateBody[structs.DiscountRequest](newJSONRequest(`{"discountPrice":1e12}`))
	assert.True(t, IsValidationError(err))

	_, err = ExtractAndValidateBody[structs.ProductRequest](newJSONRequest(
		`{"name":"Hoodie","category":"masculino","price":99999999.99,"imageUrl":"images/a.jpg"}`))
	assert.NoError(t, err)
}
