// Package ui holds the terminal primitives shared by the screens: toasts
// and line, password and multi-line prompts.
package ui
