// Command litewalk reads SQLite database files by walking the on-disk
// format directly. It answers .dbinfo and .tables shell commands and
// simple SELECT statements without linking the SQLite library.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/LiteWalk/core/exec"
	"github.com/FocuswithJustin/LiteWalk/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for litewalk.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text"`

	Exec    ExecCmd    `cmd:"" default:"withargs" help:"Run a statement or dot command against a database"`
	Info    InfoCmd    `cmd:"" help:"Print page size and table count"`
	Tables  TablesCmd  `cmd:"" help:"List user tables"`
	Schema  SchemaCmd  `cmd:"" help:"Print stored CREATE statements"`
	Hash    HashCmd    `cmd:"" help:"Print a BLAKE3 digest of a table's contents"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// withEngine opens the database at path, hands it to fn, and closes it.
func withEngine(path string, fn func(*exec.Engine) error) error {
	engine, err := exec.Open(path)
	if err != nil {
		return err
	}
	defer engine.Close()
	return fn(engine)
}

// ExecCmd mirrors the sqlite3 shell's invocation shape: a database file
// followed by one statement or dot command. It is the default command,
// so `litewalk file.db .dbinfo` works without naming it.
type ExecCmd struct {
	Database string `arg:"" help:"SQLite database file, plain or xz-compressed" type:"existingfile"`
	Command  string `arg:"" help:"Statement or dot command to run"`
}

func (c *ExecCmd) Run() error {
	return withEngine(c.Database, func(engine *exec.Engine) error {
		return engine.Execute(os.Stdout, c.Command)
	})
}

// InfoCmd prints summary information about a database file.
type InfoCmd struct {
	Database string `arg:"" help:"SQLite database file" type:"existingfile"`
}

func (c *InfoCmd) Run() error {
	return withEngine(c.Database, func(engine *exec.Engine) error {
		return engine.DBInfo(os.Stdout)
	})
}

// TablesCmd lists user tables.
type TablesCmd struct {
	Database string `arg:"" help:"SQLite database file" type:"existingfile"`
}

func (c *TablesCmd) Run() error {
	return withEngine(c.Database, func(engine *exec.Engine) error {
		return engine.Tables(os.Stdout)
	})
}

// SchemaCmd prints stored CREATE statements.
type SchemaCmd struct {
	Database string `arg:"" help:"SQLite database file" type:"existingfile"`
	Table    string `arg:"" optional:"" help:"Limit output to one table"`
}

func (c *SchemaCmd) Run() error {
	return withEngine(c.Database, func(engine *exec.Engine) error {
		return engine.Schema(os.Stdout, c.Table)
	})
}

// HashCmd digests a table's contents.
type HashCmd struct {
	Database string `arg:"" help:"SQLite database file" type:"existingfile"`
	Table    string `arg:"" help:"Table to digest"`
}

func (c *HashCmd) Run() error {
	return withEngine(c.Database, func(engine *exec.Engine) error {
		return engine.TableHash(os.Stdout, c.Table)
	})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("litewalk version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("litewalk"),
		kong.Description("LiteWalk - SQLite database file reader"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
