// Package static embeds the files served under /static.
package static

import "embed"

//go:embed *.svg *.css
var FS embed.FS
