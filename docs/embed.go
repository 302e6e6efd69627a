// Copyright © 2024 The gmlfmt authors

// Package docs embeds the gmlfmt style guide for use by the CLI.
package docs

import _ "embed"

//go:embed style.md
var StyleGuide string
