// Command hotseat plays a match between two players sharing one terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

func main() {
	if err := play(mb.NewStandardMatch(mb.SideHost), os.Stdin, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func play(m *mb.Match, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for _, side := range mb.Sides {
		for !m.Ready(side) {
			index, spec, ok := m.Board(side).NextShip()
			if ok {
				fmt.Fprintf(out, "\n%s board:\n%s", side, m.Board(side).Grid())
				fmt.Fprintf(out, "%s, place ship %d (%s, length %d) as: row col row col\n", side, index, spec.Name, spec.Length)
			} else {
				fmt.Fprintf(out, "%s, fleet placed; press enter to lock it in\n", side)
			}

			if !scanner.Scan() {
				return inputEnded(scanner)
			}

			if !ok {
				if _, err := m.SetReady(side); err != nil {
					fmt.Fprintln(out, err)
				}
				continue
			}

			nums, err := parseInts(scanner.Text(), 4)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			start, end := mb.NewCoordinates(nums[0], nums[1]), mb.NewCoordinates(nums[2], nums[3])
			if err := m.PlaceShip(side, index, start, end); err != nil {
				fmt.Fprintln(out, err)
			}
		}
	}

	for m.Phase() == mb.PhaseActive {
		side := m.Turn()
		fmt.Fprintf(out, "\n%s, your shots:\n%s", side, m.OpponentView(side))
		fmt.Fprintf(out, "%s, fire as: row col\n", side)

		if !scanner.Scan() {
			return inputEnded(scanner)
		}
		nums, err := parseInts(scanner.Text(), 2)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		target := mb.NewCoordinates(nums[0], nums[1])
		move, err := m.FireAt(side, target)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, "%s fired at (%d, %d): %s\n", side, move.Row, move.Col, move.Outcome)
		if cells, sunk := m.SunkShip(side.Other(), target); sunk {
			fmt.Fprintf(out, "ship of length %d sunk\n", len(cells))
		}
	}

	winner, _ := m.Winner()
	fmt.Fprintf(out, "\n%s wins after %d moves\n", winner, len(m.Moves()))
	return nil
}

func parseInts(line string, n int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}

	nums := make([]int, n)
	for i, field := range fields {
		num, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", field)
		}
		nums[i] = num
	}
	return nums, nil
}

func inputEnded(scanner *bufio.Scanner) error {
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
