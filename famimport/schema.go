package famimport

import _ "embed"

//go:embed schema.json
var schemaJSON []byte
