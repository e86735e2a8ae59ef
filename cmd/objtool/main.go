// objtool is a CLI utility for inspecting Wavefront OBJ models and MTL
// material libraries.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/internal/assets"
	"github.com/Faultbox/objkit/internal/config"
	"github.com/Faultbox/objkit/internal/logger"
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	assets *assets.Manager
	log    *zap.Logger
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := &app{
		cfg:    cfg,
		assets: assets.NewManager(cfg.Assets.CacheSize, logger.Named("assets")),
		log:    logger.Named("objtool"),
	}
	for _, dir := range cfg.Assets.SearchPaths {
		if err := a.assets.AddSearchPath(dir); err != nil {
			a.log.Warn("skipping search path", zap.String("path", dir), zap.Error(err))
		}
	}
	defer a.assets.Close()

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		err = a.cmdInfo(rest)
	case "dump":
		err = a.cmdDump(rest)
	case "mtl":
		err = a.cmdMTL(rest)
	case "bbox":
		err = a.cmdBBox(rest)
	case "collide":
		err = a.cmdCollide(rest)
	case "preview":
		err = a.cmdPreview(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ/MTL inspection utility

Usage:
  objtool [flags] <command> [options]

Commands:
  info <file.obj>...                     Show counts, layout and objects
  dump [-n N] <file.obj> [object]        Print the vertex buffer of an object
  mtl <file.mtl>                         List materials
  bbox <file.obj>                        Print the XY bound box of every object
  collide <file.obj> <object> <object>   Test two object hitboxes for overlap
  preview [-o out.png] <file.obj> [object]
                                         Render the XY projection to PNG

Flags:
  -config path     Config file (default: ./objtool.yaml or user config dir)
  -debug           Enable debug logging
  -strict          Reject non-uniform face records
  -charset name    Charset of object and material names (e.g. euc-kr)
  -workers N       Number of background load workers
  -load-all        Load objects missing from the config's object list
  -log-file path   Write logs to this file as well

Examples:
  objtool info models/*.obj
  objtool dump -n 12 crate.obj Crate
  objtool -charset euc-kr mtl prontera.mtl
  objtool preview -o tree.png forest.obj Tree`)
}
