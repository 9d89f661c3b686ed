// SPDX-License-Identifier: Apache-2.0

// Package display renders a walk's result mapping as JSON or text, with
// optional ANSI coloring for the text form.
package display

import "fmt"

type color uint

func (c color) Code() string {
	switch c {
	case reset:
		return "\033[0m"
	case green:
		return "\033[32m"
	case yellow:
		return "\033[33m"
	case gray:
		return "\033[37m"
	default:
		return ""
	}
}

const (
	reset color = iota
	green
	yellow
	gray
)

type colorerFunc = func(string, color) string

var colorer colorerFunc = colorerOn //nolint:revive

func colorerOn(s string, c color) string {
	return fmt.Sprintf("%s%s%s", c.Code(), s, reset.Code())
}

func colorerOff(s string, _ color) string {
	return s
}

func EnableColor() {
	colorer = colorerOn
}

func DisableColor() {
	colorer = colorerOff
}
