// Copyright © 2026 The LISPE authors

// Package docs embeds the LISPE language reference for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
