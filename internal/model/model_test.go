package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThoughtDefaults(t *testing.T) {
	now := time.Now()
	th := NewThought("Hello world!", now)

	assert.Equal(t, "Hello world!", th.Text)
	assert.Zero(t, th.Likes)
	assert.Empty(t, th.ID)
	assert.True(t, th.CreatedAt.Equal(now.Truncate(time.Millisecond)))
	assert.Equal(t, time.UTC, th.CreatedAt.Location())
}

func TestTextTagMatchesBounds(t *testing.T) {
	field, ok := reflect.TypeOf(Thought{}).FieldByName("Text")
	require.True(t, ok)

	want := fmt.Sprintf("required,min=%d,max=%d", TextMinLength, TextMaxLength)
	assert.Equal(t, want, field.Tag.Get("validate"))
}

func TestValidateTextLength(t *testing.T) {
	cases := []struct {
		name string
		text string
		kind string
	}{
		{"empty", "", "required"},
		{"too short", "hey", "minlength"},
		{"one below min", strings.Repeat("a", TextMinLength-1), "minlength"},
		{"min", strings.Repeat("a", TextMinLength), ""},
		{"max", strings.Repeat("a", TextMaxLength), ""},
		{"one above max", strings.Repeat("a", TextMaxLength+1), "maxlength"},
		{"multibyte counts runes", strings.Repeat("é", TextMaxLength), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewThought(tc.text, time.Now()).Validate()
			if tc.kind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			fe, ok := verrs["text"]
			require.True(t, ok, "expected error keyed by json field name, got %v", verrs)
			assert.Equal(t, tc.kind, fe.Kind)
			assert.Equal(t, "text", fe.Path)
			assert.NotEmpty(t, fe.Message)
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	err := NewThought("hey", time.Now()).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed: text:")
	assert.Contains(t, err.Error(), "minimum allowed length (6)")
}
