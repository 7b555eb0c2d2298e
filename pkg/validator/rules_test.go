package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Kathmandu Auto Works"),
			validator.ValidEmail("email", "shop@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
		)
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("email"))
	})
}

func TestNepaliPhone(t *testing.T) {
	t.Parallel()

	valid := []string{
		"9812345678",
		"9712345678",
		"+9779812345678",
		"9779812345678",
	}
	for _, phone := range valid {
		assert.True(t, validator.NepaliPhone("phone", phone).Check(), phone)
	}

	invalid := []string{
		"",
		"12345",
		"9912345678",    // not a 97/98 prefix
		"981234567",     // too short
		"98123456789",   // too long
		"+9989812345678", // wrong country code
	}
	for _, phone := range invalid {
		assert.False(t, validator.NepaliPhone("phone", phone).Check(), phone)
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.ValidEmail("email", "user@example.com").Check())
	assert.False(t, validator.ValidEmail("email", "user@localhost").Check())
	assert.False(t, validator.ValidEmail("email", "not-an-email").Check())
	assert.False(t, validator.ValidEmail("email", "").Check())

	// Optional variant only kicks in when a value is present.
	assert.True(t, validator.OptionalEmail("email", "").Check())
	assert.True(t, validator.OptionalEmail("email", "user@example.com").Check())
	assert.False(t, validator.OptionalEmail("email", "nope").Check())
}

func TestValidSubdomain(t *testing.T) {
	t.Parallel()

	valid := []string{"acme", "acme-motors", "a", "42garage"}
	for _, label := range valid {
		assert.True(t, validator.ValidSubdomain("subdomain", label).Check(), label)
	}

	invalid := []string{"", "-acme", "acme-", "ac_me", "Acme", "one.two"}
	for _, label := range invalid {
		assert.False(t, validator.ValidSubdomain("subdomain", label).Check(), label)
	}
}

func TestNotReserved(t *testing.T) {
	t.Parallel()

	reserved := []string{"www", "api", "admin"}

	assert.True(t, validator.NotReserved("subdomain", "acme", reserved).Check())
	assert.False(t, validator.NotReserved("subdomain", "www", reserved).Check())
	assert.False(t, validator.NotReserved("subdomain", "API", reserved).Check())
}

func TestNonNegative(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.NonNegative("rate", 0.0).Check())
	assert.True(t, validator.NonNegative("rate", 150.5).Check())
	assert.False(t, validator.NonNegative("rate", -0.01).Check())
	assert.True(t, validator.NonNegative("qty", 3).Check())
	assert.False(t, validator.NonNegative("qty", -1).Check())
}
