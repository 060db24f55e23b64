package validator

import (
	"testing"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"full_name" validate:"required,max=10"`
	Phone string `json:"phone_number" validate:"omitempty,phone"`
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+254712345678", true},
		{"0712345678", true},
		{"123456789", true},
		{"12345678", false},
		{"+1234567890123456", false},
		{"07-1234-5678", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "Amina", Phone: "+254712345678"}))
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "Amina"}))

	err := ValidateRequest(&sampleRequest{Phone: "abc"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, errors.FlattenHints(err), "Request validation failed")

	details := errors.GetAllSafeDetails(err)
	require.NotEmpty(t, details)
	var payload string
	for _, d := range details {
		for _, p := range d.SafeDetails {
			payload += p
		}
	}
	assert.Contains(t, payload, "full_name")
	assert.Contains(t, payload, "phone_number")
}

type amountRequest struct {
	Amount   decimal.Decimal     `json:"amount" validate:"gte=0"`
	Latitude decimal.NullDecimal `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Born     *types.Date         `json:"born" validate:"required"`
}

func TestValidateRequestWrapperTypes(t *testing.T) {
	NewValidator()
	born := types.NewDate(2015, 1, 2)

	assert.NoError(t, ValidateRequest(&amountRequest{Amount: decimal.NewFromInt(10), Born: &born}))
	assert.NoError(t, ValidateRequest(&amountRequest{Amount: decimal.Zero, Born: &born}))

	err := ValidateRequest(&amountRequest{Amount: decimal.NewFromInt(-1), Born: &born})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(&amountRequest{
		Amount:   decimal.NewFromInt(1),
		Latitude: decimal.NewNullDecimal(decimal.NewFromInt(91)),
		Born:     &born,
	})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(&amountRequest{Amount: decimal.NewFromInt(1)})
	assert.True(t, ierr.IsValidation(err))
}

type nullableRequest struct {
	Depth    nullable.Nullable[int]             `json:"depth" validate:"omitempty,min=1,max=1000"`
	Latitude nullable.Nullable[decimal.Decimal] `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
}

func TestValidateRequestNullableFields(t *testing.T) {
	NewValidator()

	tests := []struct {
		name    string
		req     nullableRequest
		wantErr bool
	}{
		{name: "absent"},
		{name: "explicit null", req: nullableRequest{Depth: nullable.NewNullNullable[int](), Latitude: nullable.NewNullNullable[decimal.Decimal]()}},
		{name: "in range", req: nullableRequest{Depth: nullable.NewNullableWithValue(40), Latitude: nullable.NewNullableWithValue(decimal.RequireFromString("-1.29"))}},
		{name: "zero depth", req: nullableRequest{Depth: nullable.NewNullableWithValue(0)}, wantErr: true},
		{name: "zero latitude", req: nullableRequest{Latitude: nullable.NewNullableWithValue(decimal.Zero)}},
		{name: "latitude out of range", req: nullableRequest{Latitude: nullable.NewNullableWithValue(decimal.NewFromInt(-91))}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
