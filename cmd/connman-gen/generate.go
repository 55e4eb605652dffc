package main

import (
	"strings"
)

// Generate renders the stubs for every interface of def into one file.
func Generate(def *RawAPIDef) (string, error) {
	var b strings.Builder
	renderTemplate(&b, "header", def)
	for _, iface := range def.Interfaces {
		renderTemplate(&b, "stub", iface)
	}
	return b.String(), nil
}
