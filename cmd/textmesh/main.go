// textmesh turns text into extruded 3D meshes and writes them as OBJ files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/textmesh/internal/assets"
	"github.com/Faultbox/textmesh/internal/config"
	"github.com/Faultbox/textmesh/internal/export"
	"github.com/Faultbox/textmesh/internal/logger"
	"github.com/Faultbox/textmesh/pkg/encoding"
	"github.com/Faultbox/textmesh/pkg/textmesh"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	command := "gen"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(fmt.Errorf("initializing logger: %w", err))
	}
	defer logger.Sync()
	textmesh.SetLogger(logger.Log.Named("textmesh"))

	switch command {
	case "gen", "generate":
		err = cmdGen(cfg, args)
	case "info":
		err = cmdInfo(cfg, args)
	case "init":
		err = cmdInit(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Sync()
		fail(err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `textmesh - text to 3D mesh generator

Usage:
  textmesh [flags] <command> [args]

Commands:
  gen [text...]    Build a mesh for the text and write it as OBJ (default)
                   Text comes from -text-file, -text or the arguments
  info [font]      Show font information
  init [path]      Write the default config file

Examples:
  textmesh -text "Hello" -out hello.obj
  textmesh -font fonts/DejaVuSans.ttf -quality high gen Hello world
  textmesh -text-file sign.txt -encoding euc-kr -font NanumGothic gen
  textmesh info goregular
  textmesh init ./textmesh.yaml

Flags:`)
	flag.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newLibrary(cfg *config.Config) *assets.Library {
	lib := assets.NewLibrary()
	for _, dir := range cfg.Font.SearchPaths {
		lib.AddSearchPath(dir)
	}
	return lib
}

func cmdGen(cfg *config.Config, args []string) error {
	text, err := inputText(args)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("no text given (use -text or pass it as arguments)")
	}

	req, err := cfg.Request(text)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	lib := newLibrary(cfg)
	defer lib.Close()

	mesh, err := lib.Generate(req)
	if err != nil {
		if textmesh.IsUnimplemented(err) {
			return fmt.Errorf("unsupported setting: %w", err)
		}
		return err
	}

	if err := export.WriteOBJFile(cfg.Output.Path, cfg.Output.Object, mesh); err != nil {
		return err
	}

	bounds := mesh.Bounds()
	size := bounds.Size()
	logger.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.String("font", req.Style.Font),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("glyphs", lib.GlyphCount(req.Style.Font)),
		zap.Float32s("min", bounds.Min[:]),
		zap.Float32s("size", size[:]))
	return nil
}

// inputText picks the text from -text-file, -text or the arguments.
func inputText(args []string) (string, error) {
	if path := config.TextFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading text: %w", err)
		}
		return encoding.Decode(data, config.Encoding())
	}
	if text := config.Text(); text != "" {
		return text, nil
	}
	return strings.Join(args, " "), nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	name := cfg.Font.Name
	if len(args) > 0 {
		name = args[0]
	}

	lib := newLibrary(cfg)
	defer lib.Close()

	info, err := lib.Info(name)
	if err != nil {
		return err
	}

	path := info.Path
	if path == "" {
		path = "(builtin)"
	}

	fmt.Printf("Font: %s\n", info.Name)
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Glyphs: %d\n", info.NumGlyphs)
	fmt.Printf("Units per em: %d\n", info.UnitsPerEm)
	return nil
}

func cmdInit(args []string) error {
	cfg := config.Default()
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), config.FileName))
		return nil
	}

	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}
