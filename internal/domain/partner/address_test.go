package partner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func uintPtr(v uint) *uint { return &v }

func TestStreetType(t *testing.T) {
	tests := []struct {
		streetType StreetType
		valid      bool
		display    string
	}{
		{StreetTypeLane, true, "пер."},
		{StreetTypeStreet, true, "ул."},
		{StreetTypeAvenue, true, "п-т"},
		{StreetTypeBoulevard, true, "б-р"},
		{StreetType("road"), false, "road"},
	}

	for _, tt := range tests {
		t.Run(string(tt.streetType), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.streetType.IsValid())
			assert.Equal(t, tt.display, tt.streetType.Display())
		})
	}
}

func TestNewAddress_Defaults(t *testing.T) {
	address, err := NewAddress("", "", "", "", nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTown, address.Town)
	assert.Equal(t, StreetTypeStreet, address.StreetType)

	_, err = NewAddress("", StreetType("road"), "", "", nil, "")
	assert.Error(t, err)
}

func TestAddress_Display(t *testing.T) {
	tests := []struct {
		name    string
		address *Address
		want    string
	}{
		{
			name: "full address",
			address: &Address{
				Town:       DefaultTown,
				StreetType: StreetTypeStreet,
				Street:     "Московская",
				Building:   "5а",
				Apartment:  uintPtr(12),
				Info:       "код домофона 34",
			},
			want: "Белгород-Днестровский, ул. Московская, д. 5а, кв. 12, код домофона 34",
		},
		{
			name: "town only",
			address: &Address{
				Town:       "Затока",
				StreetType: StreetTypeStreet,
			},
			want: "Затока",
		},
		{
			name: "no apartment",
			address: &Address{
				Town:       DefaultTown,
				StreetType: StreetTypeLane,
				Street:     "Тира",
				Building:   "3",
			},
			want: "Белгород-Днестровский, пер. Тира, д. 3",
		},
		{
			name: "zero apartment omitted",
			address: &Address{
				Town:       DefaultTown,
				StreetType: StreetTypeAvenue,
				Street:     "Победы",
				Apartment:  uintPtr(0),
			},
			want: "Белгород-Днестровский, п-т Победы",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.address.Display())
		})
	}
}
