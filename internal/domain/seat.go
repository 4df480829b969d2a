package domain

import (
	"fmt"
	"strconv"
)

// SeatCode identifies a seat by row letter and seat number. Its canonical
// string form, e.g. "A1", is the wire and identity representation.
type SeatCode struct {
	Row    byte
	Number int
}

func (c SeatCode) String() string {
	return fmt.Sprintf("%c%d", c.Row, c.Number)
}

// ParseSeatCode parses the canonical "{row}{number}" form.
func ParseSeatCode(s string) (SeatCode, error) {
	if len(s) < 2 {
		return SeatCode{}, fmt.Errorf("seat code too short: %q", s)
	}

	row := s[0]
	if row < 'A' || row > 'Z' {
		return SeatCode{}, fmt.Errorf("seat code %q must start with an uppercase row letter", s)
	}

	number, err := strconv.Atoi(s[1:])
	if err != nil || number < 1 {
		return SeatCode{}, fmt.Errorf("seat code %q must end with a positive seat number", s)
	}

	return SeatCode{Row: row, Number: number}, nil
}

type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatUnavailable
	SeatSelected
)

func (s SeatStatus) String() string {
	switch s {
	case SeatAvailable:
		return "available"
	case SeatUnavailable:
		return "unavailable"
	case SeatSelected:
		return "selected"
	default:
		return "unknown"
	}
}

type Seat struct {
	Code   SeatCode
	Status SeatStatus
}

// GridLayout describes the shape of a hall: Rows row letters starting at 'A',
// each with SeatsPerRow seats numbered from 1.
type GridLayout struct {
	Rows        int
	SeatsPerRow int
}

// SeatGrid holds the seats of one showing as ordered rows by ordered columns.
// It is scoped to a single (movie, date, time) triple and rebuilt whenever
// that triple changes.
type SeatGrid struct {
	layout GridLayout
	rows   [][]Seat
}

// NewSeatGrid builds a grid with every seat available.
func NewSeatGrid(layout GridLayout) *SeatGrid {
	rows := make([][]Seat, layout.Rows)

	for i := range rows {
		row := make([]Seat, layout.SeatsPerRow)
		for j := range row {
			row[j] = Seat{Code: SeatCode{Row: byte('A' + i), Number: j + 1}}
		}
		rows[i] = row
	}

	return &SeatGrid{layout: layout, rows: rows}
}

func (g *SeatGrid) Layout() GridLayout {
	return g.layout
}

// Seat returns a pointer to the seat with the given code, or false if the
// code falls outside the grid.
func (g *SeatGrid) Seat(code SeatCode) (*Seat, bool) {
	row := int(code.Row - 'A')
	col := code.Number - 1

	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return nil, false
	}

	return &g.rows[row][col], true
}

// Each calls fn for every seat in row-major order. The pointer is valid only
// for the duration of the call.
func (g *SeatGrid) Each(fn func(*Seat)) {
	for i := range g.rows {
		for j := range g.rows[i] {
			fn(&g.rows[i][j])
		}
	}
}

// Snapshot returns a deep copy of the grid rows.
func (g *SeatGrid) Snapshot() [][]Seat {
	rows := make([][]Seat, len(g.rows))

	for i := range g.rows {
		rows[i] = make([]Seat, len(g.rows[i]))
		copy(rows[i], g.rows[i])
	}

	return rows
}
