package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("viewer@example.com"))
	assert.NoError(t, ValidateEmail("  viewer@example.com  "))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("viewer@"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("viewer_01"))
	assert.NoError(t, ValidateUsername("a-b"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername(strings.Repeat("x", 51)))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("hunter22"))

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateSessionName(t *testing.T) {
	assert.NoError(t, ValidateSessionName("race day"))

	assert.Error(t, ValidateSessionName("   "))
	assert.Error(t, ValidateSessionName(strings.Repeat("x", 101)))
}

func TestValidateChannelID(t *testing.T) {
	assert.NoError(t, ValidateChannelID("shroud"))
	assert.NoError(t, ValidateChannelID("dQw4w9WgXcQ"))
	assert.NoError(t, ValidateChannelID("v4abcd"))

	assert.Error(t, ValidateChannelID(""))
	assert.Error(t, ValidateChannelID("has/slash"))
	assert.Error(t, ValidateChannelID(strings.Repeat("x", 101)))
}

func TestValidatePreferenceKey(t *testing.T) {
	assert.NoError(t, ValidatePreferenceKey("theme"))
	assert.NoError(t, ValidatePreferenceKey("layout.default_kind"))

	assert.Error(t, ValidatePreferenceKey(""))
	assert.Error(t, ValidatePreferenceKey("Theme"))
	assert.Error(t, ValidatePreferenceKey("trailing."))
	assert.Error(t, ValidatePreferenceKey(strings.Repeat("k", 129)))
}

func TestValidatePreferenceValue(t *testing.T) {
	assert.NoError(t, ValidatePreferenceValue(""))
	assert.NoError(t, ValidatePreferenceValue("dark"))

	assert.Error(t, ValidatePreferenceValue(strings.Repeat("v", 4097)))
}
