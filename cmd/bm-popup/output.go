package main

import "github.com/fatih/color"

var (
	Red      = color.New(color.FgRed)
	Yellow   = color.New(color.FgYellow)
	Cyan     = color.New(color.FgCyan)
	CyanBold = color.New(color.FgCyan).Add(color.Bold)
	Green    = color.New(color.FgGreen)
	Faint    = color.New(color.Faint)
)
