// Package tui draws the animation in a terminal: the tree itself (termenv),
// build progress (progressbar), statistics (tablewriter) and traversal
// reports (glamour).
package tui
