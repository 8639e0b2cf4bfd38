// Package viz renders measured quantities for the terminal.
//
//   - [RenderTable]: lipgloss table of named results in plain, LaTeX or macro form
//   - [PlotSeries]: asciigraph plot of a series of readings with its bounds
//   - [Browser]: Bubble Tea program for paging through saved runs
//
// # Key Bindings
//
//	j/k, up/down - Move through the run list
//	enter        - Open the selected run
//	esc          - Back to the run list
//	t            - Cycle color themes
//	q            - Quit
package viz
