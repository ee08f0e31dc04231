// Package render draws game snapshots as plain text.
package render

import (
	"fmt"
	"io"
	"strings"

	"ants-vs-bees/internal/game"

	"github.com/dustin/go-humanize"
	"github.com/rivo/uniseg"
)

const cellWidth = 10

// letters abbreviates defender types on the board.
var letters = map[string]string{
	"grower":  "G",
	"thrower": "T",
	"eater":   "E",
	"scuba":   "S",
	"guard":   "D",
}

// Board writes the snapshot as a grid, queen on the left and hive on the
// right. Water cells are marked with '≈'.
func Board(w io.Writer, s game.Snapshot) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s turn, food %s", humanize.Ordinal(s.Turn+1), humanize.Comma(int64(s.Food)))
	if len(s.Boosts) > 0 {
		fmt.Fprintf(&sb, ", boosts: %s", strings.Join(s.Boosts, " "))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "queen: %s, hive: %s\n", bees(s.QueenBees), bees(s.HiveBees))

	sb.WriteString("    ")
	if len(s.Tunnels) > 0 {
		for p := range s.Tunnels[0] {
			fmt.Fprintf(&sb, "%-*d", cellWidth, p)
		}
	}
	sb.WriteString("\n")

	for t, row := range s.Tunnels {
		fmt.Fprintf(&sb, "%2d Q", t)
		for _, c := range row {
			sb.WriteString(pad(Cell(c), cellWidth))
		}
		sb.WriteString("H\n")
	}

	switch s.Outcome {
	case "won":
		sb.WriteString("The colony survived.\n")
	case "lost":
		sb.WriteString("The queen has fallen.\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Cell renders one tunnel cell, e.g. "[T2+D b3]" for a guarded thrower
// with two armor and three bees present.
func Cell(c game.Cell) string {
	var sb strings.Builder
	if c.Water {
		sb.WriteString("≈")
	} else {
		sb.WriteString("[")
	}
	if c.Defender != "" {
		fmt.Fprintf(&sb, "%s%d", letter(c.Defender), c.Armor)
		if c.Boost != "" {
			sb.WriteString("*")
		}
	}
	if c.Guard != "" {
		sb.WriteString("+" + letter(c.Guard))
	}
	if c.Bees > 0 {
		fmt.Fprintf(&sb, " b%d", c.Bees)
	}
	if c.Water {
		sb.WriteString("≈")
	} else {
		sb.WriteString("]")
	}
	return sb.String()
}

// Kinds lists the deployable defenders and their costs.
func Kinds(w io.Writer, kinds []game.KindInfo) error {
	for _, k := range kinds {
		if _, err := fmt.Fprintf(w, "  %-8s %s  cost %d, armor %d\n", k.Name, letter(k.Name), k.Cost, k.Armor); err != nil {
			return err
		}
	}
	return nil
}

// pad right-fills s to width terminal columns.
func pad(s string, width int) string {
	if n := uniseg.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s + " "
}

func letter(name string) string {
	if l, ok := letters[name]; ok {
		return l
	}
	return "?"
}

func bees(n int) string {
	return humanize.Comma(int64(n)) + " " + pluralize(n, "bee", "bees")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
