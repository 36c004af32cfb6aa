// Package main prints the browser binary the sessions will use, downloading
// one when none is installed.
package main

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/utils"
)

func main() {
	if p, has := launcher.LookPath(); has {
		fmt.Println(p)
		return
	}

	p, err := launcher.NewBrowser().Get()
	utils.E(err)

	fmt.Println(p)
}
