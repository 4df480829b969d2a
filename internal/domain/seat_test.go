package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SeatCode
		wantErr bool
	}{
		{
			name:  "should parse single digit seat",
			input: "A1",
			want:  SeatCode{Row: 'A', Number: 1},
		},
		{
			name:  "should parse multi digit seat",
			input: "J12",
			want:  SeatCode{Row: 'J', Number: 12},
		},
		{
			name:    "should fail on empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "should fail on missing number",
			input:   "A",
			wantErr: true,
		},
		{
			name:    "should fail on lowercase row",
			input:   "a1",
			wantErr: true,
		},
		{
			name:    "should fail on zero seat number",
			input:   "A0",
			wantErr: true,
		},
		{
			name:    "should fail on trailing garbage",
			input:   "A1x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeatCode(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeatCodeString(t *testing.T) {
	code := SeatCode{Row: 'B', Number: 7}

	assert.Equal(t, "B7", code.String())

	parsed, err := ParseSeatCode(code.String())
	require.NoError(t, err)
	assert.Equal(t, code, parsed)
}

func TestNewSeatGrid(t *testing.T) {
	grid := NewSeatGrid(GridLayout{Rows: 3, SeatsPerRow: 4})

	rows := grid.Snapshot()
	require.Len(t, rows, 3)

	for i, row := range rows {
		require.Len(t, row, 4)

		for j, seat := range row {
			assert.Equal(t, SeatCode{Row: byte('A' + i), Number: j + 1}, seat.Code)
			assert.Equal(t, SeatAvailable, seat.Status)
		}
	}
}

func TestSeatGridSeatLookup(t *testing.T) {
	grid := NewSeatGrid(GridLayout{Rows: 2, SeatsPerRow: 2})

	seat, ok := grid.Seat(SeatCode{Row: 'B', Number: 2})
	require.True(t, ok)
	assert.Equal(t, "B2", seat.Code.String())

	_, ok = grid.Seat(SeatCode{Row: 'C', Number: 1})
	assert.False(t, ok)

	_, ok = grid.Seat(SeatCode{Row: 'A', Number: 3})
	assert.False(t, ok)
}

func TestSeatGridSnapshotIsCopy(t *testing.T) {
	grid := NewSeatGrid(GridLayout{Rows: 1, SeatsPerRow: 1})

	rows := grid.Snapshot()
	rows[0][0].Status = SeatUnavailable

	seat, ok := grid.Seat(SeatCode{Row: 'A', Number: 1})
	require.True(t, ok)
	assert.Equal(t, SeatAvailable, seat.Status)
}
