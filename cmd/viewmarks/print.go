package main

import (
	"fmt"
	"io"

	"github.com/viewmarks/extension/pkg/core"
)

func printBookmarks(out io.Writer, m core.ShortcutMap) {
	if len(m) == 0 {
		fmt.Fprintln(out, "no bookmarks")
		return
	}
	for _, slot := range m.Slots() {
		vp := m[slot]
		fmt.Fprintf(out, "%d: pos=(%.3f, %.3f, %.3f) rot=(%.3f, %.3f) zoom=%.3f\n",
			slot, vp.Position.X(), vp.Position.Y(), vp.Position.Z(), vp.RotationX, vp.RotationY, vp.Zoom)
	}
}
