// Package tui is the terminal browse mode: the same banner and rows the web
// pages show, navigated with the keyboard. Opening a trailer prints its
// watch URL instead of embedding a player.
package tui
