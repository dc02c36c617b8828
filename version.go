package jot

import _ "embed"

// Version exposes the version of the application.
//
//go:embed VERSION
var Version string
