// Swatch - median-cut colour palette extraction
//
// Swatch reduces an image to a small palette of representative colours,
// ordered from brightest to darkest.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/swatch/internal/cli"

func main() {
	cli.Execute()
}
