package battleship

import "fmt"

// ShipSpec is one entry of a fleet. Ships are identified by
// their index in the fleet, names do not need to be unique.
type ShipSpec struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// StandardFleet totals 13 ship cells.
var StandardFleet = []ShipSpec{
	{Name: "Carrier", Length: 4},
	{Name: "Battleship", Length: 3},
	{Name: "Cruiser1", Length: 2},
	{Name: "Cruiser2", Length: 2},
	{Name: "Submarine", Length: 1},
	{Name: "Destroyer", Length: 1},
}

func ValidateFleet(fleet []ShipSpec) error {
	if len(fleet) == 0 {
		return fmt.Errorf("fleet must contain at least one ship")
	}

	for i, spec := range fleet {
		if spec.Length < 1 || spec.Length > GridSize {
			return fmt.Errorf("ship %d (%s) has invalid length %d", i, spec.Name, spec.Length)
		}
	}
	return nil
}

func FleetCells(fleet []ShipSpec) int {
	total := 0
	for _, spec := range fleet {
		total += spec.Length
	}
	return total
}

func copyFleet(fleet []ShipSpec) []ShipSpec {
	cp := make([]ShipSpec, len(fleet))
	copy(cp, fleet)
	return cp
}
