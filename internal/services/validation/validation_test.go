package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errEmptyName   = errors.New("name cannot be empty")
	errNameTooLong = errors.New("name too long")
)

type sampleRequest struct {
	Name  string  `json:"name" validate:"notblank,max=5"`
	Color *string `json:"color" validate:"omitnil,hexcolor"`
}

func TestStruct(t *testing.T) {
	fieldErrs := map[string]error{"name": errEmptyName, "name.max": errNameTooLong}
	red, bad := "#ff0000", "red"

	tests := []struct {
		name      string
		req       sampleRequest
		wantErr   error
		wantField string
	}{
		{name: "valid", req: sampleRequest{Name: "ok"}},
		{name: "valid color", req: sampleRequest{Name: "ok", Color: &red}},
		{name: "blank name", req: sampleRequest{Name: "   "}, wantErr: errEmptyName, wantField: "name"},
		{name: "too long", req: sampleRequest{Name: "toolong"}, wantErr: errNameTooLong, wantField: "name"},
		{name: "bad color", req: sampleRequest{Name: "ok", Color: &bad}, wantField: "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req, fieldErrs)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestVar(t *testing.T) {
	errBadID := errors.New("invalid id")

	assert.NoError(t, Var("abc", "required", errBadID))

	err := Var("", "required", errBadID)
	assert.ErrorIs(t, err, errBadID)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStruct_SliceElements(t *testing.T) {
	type tagsRequest struct {
		Names []string `json:"names" validate:"min=1,dive,notblank"`
	}
	errEmptyTag := errors.New("tag name cannot be empty")
	fieldErrs := map[string]error{"names": errEmptyTag}

	err := Struct(tagsRequest{Names: []string{"ok", " "}}, fieldErrs)
	assert.ErrorIs(t, err, errEmptyTag)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "names", verr.Field)

	assert.ErrorIs(t, Struct(tagsRequest{}, fieldErrs), errEmptyTag)
}
