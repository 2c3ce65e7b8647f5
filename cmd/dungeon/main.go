package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"chosenoffset.com/dungeon/internal/config"
	"chosenoffset.com/dungeon/internal/game"
	"chosenoffset.com/dungeon/internal/placeholders"
	"chosenoffset.com/dungeon/internal/raydump"
	"chosenoffset.com/dungeon/internal/render"
	ebitenrender "chosenoffset.com/dungeon/internal/render/ebiten"
	"chosenoffset.com/dungeon/internal/world/atlas"
	"chosenoffset.com/dungeon/internal/world/maploader"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	mapPath := flag.String("map", "", "path to a JSON map file (overrides the config)")
	texturePath := flag.String("texture", "", "wall texture image or atlas JSON (overrides the config and map)")
	dumpMode := flag.Bool("dump", false, "print ray casts around the spawn point and exit")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dungeon",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}
	if *mapPath != "" {
		cfg.MapPath = *mapPath
	}
	logger.Info("Config loaded", "path", *configPath, "fov", cfg.FOVDegrees, "collision", cfg.WallCollision)

	m, err := loadMap(cfg)
	if err != nil {
		logger.Fatal("Failed to load map", "err", err)
	}
	logger.Info("Map loaded",
		"name", m.Data.Name,
		"rows", m.Grid.Rows(),
		"cols", m.Grid.Cols(),
		"cell_size", m.Grid.CellSize())

	if *dumpMode {
		raydump.Dump(os.Stdout, logger, cfg, m)
		return
	}

	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to create renderer", "err", err)
	}
	loader := ebitenrender.NewResourceLoader()

	texture := m.TexturePath(cfg.TexturePath)
	if *texturePath != "" {
		texture = *texturePath
	}
	tiles, err := loadTiles(texture, loader)
	if err != nil {
		logger.Fatal("Failed to load wall texture", "err", err)
	}
	logger.Info("Texture loaded", "name", tiles.Config.Name, "tile_width", tiles.Config.TileWidth)

	g, err := game.New(cfg, m, game.Deps{
		Renderer: renderer,
		Input:    ebitenrender.NewInputManager(),
		Clock:    ebitenrender.NewClock(),
		Atlas:    tiles,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("Failed to create game", "err", err)
	}

	engine := ebitenrender.NewEngine()
	engine.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	engine.SetWindowTitle("Dungeon - " + m.Data.Name)
	engine.SetWindowResizable(true)

	logger.Info("Starting game...")
	if err := engine.RunGame(g); err != nil {
		logger.Fatal("Game loop failed", "err", err)
	}
	logger.Info("Window closed", "frames", g.FrameCount)
}

// loadMap loads the configured map file, or the built-in room when none is set
func loadMap(cfg *config.Config) (*maploader.Map, error) {
	if cfg.MapPath == "" || cfg.MapPath == maploader.BuiltinName {
		return maploader.Builtin(cfg.CellSize)
	}
	return maploader.LoadMap(cfg.MapPath, cfg.CellSize)
}

// loadTiles loads the texture at path. An empty path uses the generated
// placeholder atlas.
func loadTiles(path string, loader render.ResourceLoader) (*atlas.Atlas, error) {
	if path == "" {
		return atlas.New(placeholders.TileAtlas(""), loader.ImageFrom(placeholders.AtlasImage()))
	}
	return atlas.Load(path, loader)
}
