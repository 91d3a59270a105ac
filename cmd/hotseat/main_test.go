package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

const (
	hostPlacement = "0 0 0 3\n2 0 2 2\n4 0 4 1\n6 0 6 1\n8 0 8 0\n8 5 8 5\n\n"
	joinPlacement = "1 9 4 9\n0 5 0 7\n2 5 2 6\n4 5 4 6\n6 5 6 5\n8 8 8 8\n\n"
)

var joinShipCells = [][2]int{
	{1, 9}, {2, 9}, {3, 9}, {4, 9},
	{0, 5}, {0, 6}, {0, 7},
	{2, 5}, {2, 6},
	{4, 5}, {4, 6},
	{6, 5},
	{8, 8},
}

func TestPlayHostWins(t *testing.T) {
	var in strings.Builder
	in.WriteString(hostPlacement)
	// a bad line is reported and asked again
	in.WriteString("9 9\n")
	in.WriteString(joinPlacement)

	for i, cell := range joinShipCells {
		fmt.Fprintf(&in, "%d %d\n", cell[0], cell[1])
		switch {
		case i == len(joinShipCells)-1:
		case i < mb.GridSize:
			fmt.Fprintf(&in, "9 %d\n", i)
		default:
			fmt.Fprintf(&in, "7 %d\n", i-5)
		}
	}

	var out strings.Builder
	m := mb.NewStandardMatch(mb.SideHost)
	if err := play(m, strings.NewReader(in.String()), &out); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "host wins after 25 moves") {
		t.Fatalf("expected host to win, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "expected 4 numbers, got 2") {
		t.Fatal("expected the malformed placement to be reported")
	}
	if winner, ok := m.Winner(); !ok || winner != mb.SideHost {
		t.Fatalf("unexpected winner: %s %v", winner, ok)
	}
}

func TestPlayReportsEndOfInput(t *testing.T) {
	var out strings.Builder
	err := play(mb.NewStandardMatch(mb.SideHost), strings.NewReader(hostPlacement), &out)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}

func TestParseInts(t *testing.T) {
	if _, err := parseInts("1 x", 2); err == nil {
		t.Fatal("expected an error for a non number")
	}
	nums, err := parseInts(" 3  4 ", 2)
	if err != nil || nums[0] != 3 || nums[1] != 4 {
		t.Fatalf("unexpected parse result: %v %v", nums, err)
	}
}
