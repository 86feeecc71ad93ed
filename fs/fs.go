package appfs

import "embed"

// FS holds the database migrations and e-mail templates shipped with the binary.
// "all:" keeps the underscore-prefixed base templates.
//
//go:embed migrations all:templates
var FS embed.FS
