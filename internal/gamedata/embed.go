// Package gamedata provides the embedded difficulty table and theme used by the game.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
