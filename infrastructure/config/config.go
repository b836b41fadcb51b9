package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/minichain/infrastructure/logger"
	"github.com/kaspanet/minichain/version"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "minichain.conf"
	defaultDataDirname    = "blockchain_db"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "minichain.log"
	defaultErrLogFilename = "minichain_err.log"
)

var (
	defaultConfigFile = defaultConfigFilename
	defaultDataDir    = defaultDataDirname
	defaultLogDir     = defaultLogDirname
)

// Flags defines the configuration options for minichain.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string `short:"b" long:"datadir" description:"Directory holding the chain database"`
	LogDir      string `long:"logdir" description:"Directory to log output."`
	Profile     string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	MiningFlags
}

// Config defines the configuration options for minichain.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", homeDir, 1)
		}
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// newConfigParser returns a new command line flags parser.
func newConfigParser(cfgFlags *Flags, options flags.Options) *flags.Parser {
	return flags.NewParser(cfgFlags, options)
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		MiningFlags: MiningFlags{
			Difficulty:      defaultDifficulty,
			MinTransactions: defaultMinTransactions,
			MaxTransactions: defaultMaxTransactions,
		},
	}
}

// LoadConfig initializes and parses the config using a config file and
// command line options, then initializes logging.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with sane settings
// 	2) Pre-parse the command line to check for an alternative config file
// 	3) Load configuration file overwriting defaults with any specified options
// 	4) Parse CLI options and overwrite/add any specified options
//
// The above results in minichain functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options. Command line options always take
// precedence.
func LoadConfig() (*Config, error) {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation. After log rotation has been initialized, the
	// logger variables may be used.
	logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename))

	// Parse, validate, and set debug log level(s).
	if err := logger.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := errors.Errorf("LoadConfig: %s", err.Error())
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	return cfg, nil
}

func loadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified. Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := *cfgFlags
	preParser := newConfigParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}
	if preCfg.ShowVersion {
		return &Config{Flags: &preCfg}, nil
	}

	// Load additional config from file. A missing default config file
	// isn't an error.
	parser := newConfigParser(cfgFlags, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok || preCfg.ConfigFile != defaultConfigFile {
			return nil, errors.Wrapf(err, "error parsing config file %s", preCfg.ConfigFile)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(remainingArgs) > 0 {
		return nil, errors.Errorf("unexpected arguments %q", remainingArgs)
	}

	err = cfgFlags.ResolveMining()
	if err != nil {
		return nil, errors.Wrap(err, "loadConfig")
	}

	// Validate profile port number
	if cfgFlags.Profile != "" {
		profilePort, err := strconv.Atoi(cfgFlags.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return nil, errors.New("loadConfig: The profile port must be between 1024 and 65535")
		}
	}

	if cfgFlags.DebugLevel != "show" && !validDebugLevel(cfgFlags.DebugLevel) {
		return nil, errors.Errorf("loadConfig: the specified debug level [%s] is invalid", cfgFlags.DebugLevel)
	}

	cfgFlags.DataDir = cleanAndExpandPath(cfgFlags.DataDir)
	cfgFlags.LogDir = cleanAndExpandPath(cfgFlags.LogDir)

	return &Config{Flags: cfgFlags}, nil
}

// validDebugLevel checks the overall shape of a debug level string.
// Subsystem names are checked once the loggers are registered.
func validDebugLevel(debugLevel string) bool {
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		logLevel := logLevelPair
		if strings.Contains(logLevelPair, "=") {
			fields := strings.Split(logLevelPair, "=")
			if len(fields) != 2 {
				return false
			}
			logLevel = fields[1]
		}
		if _, ok := logger.LevelFromString(logLevel); !ok {
			return false
		}
	}
	return true
}
