// Package views implements the route-level screens of the terminal client.
//
// A screen is mounted once when its route becomes active, renders itself on
// demand and handles the commands the shell does not know. Network calls run
// on the context handed to Mount or Handle; the shell cancels that context
// when the screen is replaced, and a screen never updates its state after
// its context is done.
package views
