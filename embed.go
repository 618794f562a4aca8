package wavelink

import (
	_ "embed"
)

// Embed the spectrum catalog, parsed at startup by game.LoadCatalog.
//
//go:embed spectrums.yaml
var SpectrumsYAML []byte
