package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagText     = flag.String("text", "", "Text to turn into a mesh")
	flagTextFile = flag.String("text-file", "", "Read the text from a file")
	flagEncoding = flag.String("encoding", "", "Encoding of -text-file (default utf-8)")
	flagFont     = flag.String("font", "", "Font name or file")
	flagOut      = flag.String("out", "", "Output OBJ path")
	flagFontSize = flag.String("font-size", "", "Font size (number or auto)")
	flagDepth    = flag.String("depth", "", "Extrusion depth (number or auto)")
	flagWidth    = flag.String("width", "", "Wrap width (number or auto)")
	flagQuality  = flag.String("quality", "", "Tessellation quality: low, medium, high")
	flagCasing   = flag.String("casing", "", "Casing: none, upper, lower")
	flagNoWrap   = flag.Bool("no-wrap", false, "Disable line wrapping")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// Text returns the text given via -text.
func Text() string {
	return *flagText
}

// TextFile returns the input file given via -text-file.
func TextFile() string {
	return *flagTextFile
}

// Encoding returns the input encoding given via -encoding.
func Encoding() string {
	return *flagEncoding
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFont != "" {
		cfg.Font.Name = *flagFont
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFontSize != "" {
		cfg.Style.FontSize = *flagFontSize
	}
	if *flagDepth != "" {
		// the command line depth wins over both config depths
		cfg.Style.Depth = *flagDepth
		cfg.Size.Depth = ""
	}
	if *flagWidth != "" {
		cfg.Size.Width = *flagWidth
	}
	if *flagQuality != "" {
		cfg.Style.Quality = *flagQuality
	}
	if *flagCasing != "" {
		cfg.Style.Casing = *flagCasing
	}
	if *flagNoWrap {
		cfg.Size.Wrap = false
	}
}
