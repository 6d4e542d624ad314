package config

const (
	defaultDataDir       = "~/.local/share/clipshelf"
	defaultLogDir        = "~/.local/share/clipshelf/logs"
	defaultEFUName       = "search_results.efu"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultDistPackager  = "pyinstaller"
	defaultDistEntry     = "index.py"
	defaultDistName      = "clipshelf"
	defaultDistOutputDir = "dist"
)

// defaultImportExtensions matches the video types the catalog accepts for
// batch imports.
var defaultImportExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".flv", ".wmv"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Export: Export{
			EFUName: defaultEFUName,
			Open:    true,
		},
		Import: Import{
			Extensions: append([]string(nil), defaultImportExtensions...),
		},
		Dist: Dist{
			Packager:  defaultDistPackager,
			Entry:     defaultDistEntry,
			Name:      defaultDistName,
			OutputDir: defaultDistOutputDir,
			Bundle: []BundleEntry{
				{Source: "everything.exe", Target: "Everything.exe"},
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
