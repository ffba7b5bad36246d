package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/viewmarks/extension/internal/config"
)

const ExtensionName = "viewmarks"

// set at build time
var (
	CurrentExtensionVersion = "dev"
	BuildDate               = "unknown"
)

const usage = `usage: viewmarks [flags] <command> [args]

commands:
  replay <script.yaml> <save>   replay a host session against a save document
  show <save>                   print the bookmarks stored in a save document
  list                          list stored save documents
  version                       print version information

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet(ExtensionName, pflag.ContinueOnError)
	fs.SetOutput(out)
	configDir := fs.StringP("config", "c", ".", "directory containing "+config.FileName)
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("storage", "memory", "storage backend (memory, sqlite, postgres)")
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	cmd := strings.ToLower(rest[0])
	if cmd == "version" {
		fmt.Fprintf(out, "%s %s (%s)\n", ExtensionName, CurrentExtensionVersion, BuildDate)
		return nil
	}

	configErr := config.Load(*configDir)
	if err := bindFlags(fs); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if configErr != nil {
		a.logger.Warn("Using default configuration", "error", configErr)
	}

	switch cmd {
	case "replay":
		if len(rest) != 3 {
			return fmt.Errorf("replay expects <script.yaml> <save>")
		}
		return a.replay(rest[1], rest[2], out)
	case "show":
		if len(rest) != 2 {
			return fmt.Errorf("show expects <save>")
		}
		return a.show(rest[1], out)
	case "list":
		return a.list(out)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

// bindFlags lets command-line flags override the config file.
func bindFlags(fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"logLevel":     "log-level",
		"storage.type": "storage",
	} {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
