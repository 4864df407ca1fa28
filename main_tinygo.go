//go:build tinygo

package main

import (
	"walkclock/app"
	"walkclock/hal"
)

func main() {
	app.Run(hal.New())
}
