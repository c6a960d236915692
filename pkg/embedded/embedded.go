package embedded

import (
	_ "embed"
)

// Embed static reference data files
//
//go:embed data/instruments.json
var InstrumentsJSON []byte
