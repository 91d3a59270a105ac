package battleship

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
)

const GridSize = 10

type CellState uint8

const (
	CellWater CellState = iota
	CellShip
	CellHit
	CellMiss
)

// These tokens are the storage contract of persisted games.
// Changing them breaks every board already written.
const (
	TokenWater byte = 'W'
	TokenShip  byte = 'S'
	TokenHit   byte = 'H'
	TokenMiss  byte = 'M'
)

func (c CellState) Token() byte {
	switch c {
	case CellShip:
		return TokenShip
	case CellHit:
		return TokenHit
	case CellMiss:
		return TokenMiss
	default:
		return TokenWater
	}
}

func (c CellState) String() string {
	switch c {
	case CellWater:
		return "water"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "unknown"
	}
}

func ParseCellToken(token byte) (CellState, error) {
	switch token {
	case TokenWater:
		return CellWater, nil
	case TokenShip:
		return CellShip, nil
	case TokenHit:
		return CellHit, nil
	case TokenMiss:
		return CellMiss, nil
	default:
		return CellWater, fmt.Errorf("invalid cell token: %q", token)
	}
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) InBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

// Grid is indexed [row][col].
type Grid [GridSize][GridSize]CellState

func (g *Grid) At(c Coordinates) CellState {
	return g[c.Row][c.Col]
}

func (g *Grid) Count(state CellState) int {
	count := 0
	for row := range g {
		for col := range g[row] {
			if g[row][col] == state {
				count++
			}
		}
	}
	return count
}

// Rows serializes the grid as 10 strings of 10 tokens, row-major.
func (g Grid) Rows() []string {
	rows := make([]string, GridSize)
	for row := 0; row < GridSize; row++ {
		buf := make([]byte, GridSize)
		for col := 0; col < GridSize; col++ {
			buf[col] = g[row][col].Token()
		}
		rows[row] = string(buf)
	}
	return rows
}

func ParseGrid(rows []string) (Grid, error) {
	var grid Grid
	if len(rows) != GridSize {
		return grid, fmt.Errorf("grid must have %d rows, got %d", GridSize, len(rows))
	}

	for row, line := range rows {
		if len(line) != GridSize {
			return grid, fmt.Errorf("grid row %d must have %d cells, got %d", row, GridSize, len(line))
		}
		for col := 0; col < GridSize; col++ {
			state, err := ParseCellToken(line[col])
			if err != nil {
				return grid, fmt.Errorf("grid row %d col %d: %w", row, col, err)
			}
			grid[row][col] = state
		}
	}
	return grid, nil
}

func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}

	parsed, err := ParseGrid(rows)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// String renders the grid as a table with row and column numbers.
func (g Grid) String() string {
	var buffer bytes.Buffer
	tabWriter := tabwriter.NewWriter(&buffer, 3, 0, 1, ' ', 0)

	fmt.Fprint(tabWriter, "\t")
	for col := 0; col < GridSize; col++ {
		fmt.Fprint(tabWriter, strconv.Itoa(col)+"\t")
	}
	fmt.Fprint(tabWriter, "\n")

	for row := 0; row < GridSize; row++ {
		fmt.Fprint(tabWriter, strconv.Itoa(row)+"\t")
		for col := 0; col < GridSize; col++ {
			fmt.Fprint(tabWriter, string(g[row][col].Token())+"\t")
		}
		fmt.Fprint(tabWriter, "\n")
	}
	tabWriter.Flush()
	return buffer.String()
}
