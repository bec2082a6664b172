package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	minor, err := ToMinorUnits(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, int64(25000), minor)

	minor, err = ToMinorUnits(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, int64(0), minor)

	_, err = ToMinorUnits(decimal.RequireFromString("99.5"))
	assert.Error(t, err)
}

func TestRemoteFlightValidate(t *testing.T) {
	f := RemoteFlight{ID: "abc", FlyFrom: "SOF", FlyTo: "SOF", Airline: "FR"}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flyFrom and flyTo")

	f.FlyTo = "LTN"
	assert.NoError(t, f.Validate())
}

func TestRemoteRouteValidate(t *testing.T) {
	ok := RemoteFlight{ID: "1", FlyFrom: "SOF", FlyTo: "LTN", Airline: "W6"}

	tests := []struct {
		name    string
		route   RemoteRoute
		wantErr bool
	}{
		{"valid", RemoteRoute{BookingToken: "tok", Price: decimal.NewFromInt(40), Flights: []RemoteFlight{ok}}, false},
		{"no flights", RemoteRoute{BookingToken: "tok", Price: decimal.NewFromInt(40)}, true},
		{"fractional price", RemoteRoute{BookingToken: "tok", Price: decimal.RequireFromString("40.10"), Flights: []RemoteFlight{ok}}, true},
		{"empty token", RemoteRoute{Price: decimal.NewFromInt(40), Flights: []RemoteFlight{ok}}, true},
		{"bad flight", RemoteRoute{BookingToken: "tok", Price: decimal.NewFromInt(40), Flights: []RemoteFlight{{ID: "2", FlyFrom: "SOF", FlyTo: "SOF", Airline: "W6"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.route.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidAirlineCode(t *testing.T) {
	assert.True(t, ValidAirlineCode("FR"))
	assert.True(t, ValidAirlineCode("0B"))
	assert.False(t, ValidAirlineCode("fr"))
	assert.False(t, ValidAirlineCode(NoAirlineCode))
	assert.False(t, ValidAirlineCode(""))
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Sofia, SOF", AirportDisplayName("Sofia", "SOF"))
	assert.Equal(t, "Ryanair FR", AirlineDisplayName("Ryanair", "FR"))
}
