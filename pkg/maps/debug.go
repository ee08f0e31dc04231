package maps

import (
	"fmt"
	"strings"
)

// Debug returns a string visualization of the layout, queen side on the
// left. '~' is water, '.' is dry tunnel.
func (l *Layout) Debug() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Layout: %s\n", l.Name))
	sb.WriteString(fmt.Sprintf("Size: %dx%d, water cells: %d\n", l.Tunnels, l.Length, l.WaterCount()))
	for t, row := range l.Water {
		sb.WriteString(fmt.Sprintf("%2d Q ", t))
		for _, w := range row {
			if w {
				sb.WriteString("~")
			} else {
				sb.WriteString(".")
			}
		}
		sb.WriteString(" H\n")
	}
	return sb.String()
}
