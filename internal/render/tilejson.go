package render

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TileJSON represents a tile.json.
type TileJSON struct {
	TileJSON    string   `json:"tilejson"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version,omitempty"`
	Scheme      string   `json:"scheme"`
	Tiles       []string `json:"tiles"`
	Minzoom     uint8    `json:"minzoom"`
	Maxzoom     uint8    `json:"maxzoom"`
}

// TileMeta describes a tile set in its tile.json.
type TileMeta struct {
	Name        string
	Description string
	Version     string

	// URL is the tile URL template, defaults to {z}/{x}/{y}.png.
	URL string
}

// WriteTileJSON writes dir/tile.json for tiles from zoom 0 to maxLod.
func WriteTileJSON(dir string, maxLod uint8, meta TileMeta) error {
	url := meta.URL
	if url == "" {
		url = "{z}/{x}/{y}.png"
	}

	obj := TileJSON{
		TileJSON:    "2.2.0",
		Name:        meta.Name,
		Description: meta.Description,
		Version:     meta.Version,
		Scheme:      "xyz",
		Tiles:       []string{url},
		Minzoom:     0,
		Maxzoom:     maxLod,
	}

	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "tile.json"), bytes, 0644)
}
