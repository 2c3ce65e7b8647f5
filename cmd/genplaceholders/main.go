package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/dungeon/internal/placeholders"
)

func main() {
	wallPath := flag.String("wall", placeholders.DefaultWallTexturePath, "output path of the wall texture")
	atlasPath := flag.String("atlas", placeholders.DefaultAtlasImagePath, "output path of the wall and door atlas image")
	flag.Parse()

	fmt.Println("Dungeon Placeholder Texture Generator")
	fmt.Println("=====================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*wallPath, *atlasPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *wallPath)
	fmt.Printf("Wrote %s and %s\n", *atlasPath, placeholders.AtlasConfigPath(*atlasPath))
	fmt.Println()
	fmt.Println("Done! Run the viewer with -texture", placeholders.AtlasConfigPath(*atlasPath), "to see doors textured.")
}
