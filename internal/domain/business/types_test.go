package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() Details {
	return Details{
		BusinessName: "Acme Trading",
		Email:        "acme@example.com",
		Phone:        "0501234567",
		OfficeAddress: OfficeAddress{
			Email:       "acme@example.com",
			Phone:       "0501234567",
			AddressLine: "1 Main St",
			City:        "Dubai",
			Country:     "United Arab Emirates",
		},
	}
}

func TestDetails_Validate_OK(t *testing.T) {
	t.Parallel()
	d := validDetails()
	require.NoError(t, d.Validate())

	d.Website = "https://acme.example.com"
	require.NoError(t, d.Validate())
}

func TestDetails_Validate_CollectsAllErrors(t *testing.T) {
	t.Parallel()
	d := Details{}
	err := d.Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "business name is required")
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "phone must be 10 digits")
	assert.Contains(t, err.Error(), "address is required")
	assert.Contains(t, err.Error(), "city is required")
	assert.Contains(t, err.Error(), "country is required")
}

func TestDetails_Validate_Email(t *testing.T) {
	t.Parallel()
	d := validDetails()
	d.OfficeAddress.Email = "not-an-email"
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")
}

func TestDetails_Validate_Phone(t *testing.T) {
	t.Parallel()
	for _, phone := range []string{"123", "05012345678", "05O1234567", "+501234567"} {
		d := validDetails()
		d.OfficeAddress.Phone = phone
		require.Error(t, d.Validate(), phone)
	}
}

func TestDetails_Validate_StateRequirement(t *testing.T) {
	t.Parallel()

	d := validDetails()
	d.OfficeAddress.Country = "India"
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state is required")

	d.OfficeAddress.State = "Karnataka"
	require.NoError(t, d.Validate())

	// Stateless countries never require a state.
	d = validDetails()
	d.OfficeAddress.Country = "Singapore"
	require.NoError(t, d.Validate())
}

func TestDetails_Validate_Website(t *testing.T) {
	t.Parallel()
	for _, website := range []string{
		"not a url",
		"ftp://acme.example.com",
		"https://",
		"https://localhost",
	} {
		d := validDetails()
		d.Website = website
		require.Error(t, d.Validate(), website)
	}
}

func TestHasStates(t *testing.T) {
	t.Parallel()
	assert.True(t, HasStates("India"))
	assert.True(t, HasStates("United States"))
	assert.False(t, HasStates("United Arab Emirates"))
	assert.False(t, HasStates("Singapore"))
	assert.False(t, HasStates("Atlantis"))
}

func TestCountryCode(t *testing.T) {
	t.Parallel()
	code, ok := CountryCode("India")
	require.True(t, ok)
	assert.Equal(t, "in", code)

	_, ok = CountryCode("Atlantis")
	assert.False(t, ok)
}

func TestCountryByCode(t *testing.T) {
	t.Parallel()
	name, ok := CountryByCode("ae")
	require.True(t, ok)
	assert.Equal(t, "United Arab Emirates", name)

	name, ok = CountryByCode("GB")
	require.True(t, ok)
	assert.Equal(t, "United Kingdom", name)

	_, ok = CountryByCode("ZZ")
	assert.False(t, ok)
}

func TestMatchCountry(t *testing.T) {
	t.Parallel()

	name, ok := MatchCountry("india")
	require.True(t, ok)
	assert.Equal(t, "India", name)

	// Partial names from external sources still resolve.
	name, ok = MatchCountry("United States of America")
	require.True(t, ok)
	assert.Equal(t, "United States", name)

	_, ok = MatchCountry("")
	assert.False(t, ok)
	_, ok = MatchCountry("Atlantis")
	assert.False(t, ok)
}

func TestMatchState(t *testing.T) {
	t.Parallel()

	state, ok := MatchState("India", "karnataka")
	require.True(t, ok)
	assert.Equal(t, "Karnataka", state)

	state, ok = MatchState("Canada", "Ontario")
	require.True(t, ok)
	assert.Equal(t, "Ontario", state)

	_, ok = MatchState("Singapore", "Central")
	assert.False(t, ok)
	_, ok = MatchState("India", "")
	assert.False(t, ok)
}
