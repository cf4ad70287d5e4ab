// Package tui is the terminal load board: a shell with header, navigation,
// load list and status bars, and the create-load wizard as a modal screen.
//
// Screens pushed on the stack get keys before the list. All I/O goes through
// the store in tea.Cmd goroutines and comes back as messages.
package tui
