package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/rpmlb/internal"
	"github.com/cruciblehq/rpmlb/internal/build"
	"github.com/cruciblehq/rpmlb/internal/download"
	"github.com/cruciblehq/rpmlb/internal/logging"
	"github.com/cruciblehq/rpmlb/internal/paths"
	"github.com/cruciblehq/rpmlb/internal/runtime"
)

// Represents the root command for rpmlb.
type RootCmd struct {
	Quiet     bool            `short:"q" help:"Suppress informational output."`
	Verbose   bool            `short:"v" help:"Enable verbose output."`
	Debug     bool            `short:"d" help:"Enable debug output."`
	LogFormat string          `help:"Log format (${enum})." enum:"text,json" default:"text"`
	Config    kong.ConfigFlag `help:"Load flag defaults from a YAML file." placeholder:"PATH"`
	Run       RunCmd          `cmd:"" help:"Download and build the packages of a recipe."`
	Verify    VerifyCmd       `cmd:"" help:"Validate a recipe and report every problem."`
	List      ListCmd         `cmd:"" help:"Print the numbered build sequence of a recipe."`
	Version   VersionCmd      `cmd:"" help:"Show version information."`
}

// Streams commands write their output to.
type Output struct {
	Out  io.Writer // Command results.
	Err  io.Writer // Logs and external command output.
	Echo bool      // Whether external command output is copied to Err as it is produced.
}

// Parses arguments, configures logging, and runs the selected subcommand.
//
// Flag defaults are read from [paths.ConfigFile] when it exists.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, args, stdout, stderr, paths.ConfigFile())
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, configFiles ...string) error {
	var root RootCmd

	parser, err := kong.New(&root,
		kong.Name(internal.Name),
		kong.Description("The RPM list builder.\n\nDownloads and builds, in order, the packages listed in a recipe."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Configuration(YAML, configFiles...),
		kong.Vars{
			"version":              internal.VersionString(),
			"downloaders":          strings.Join(download.Names(), ","),
			"builders":             strings.Join(build.Names(), ","),
			"containerd_address":   runtime.DefaultAddress,
			"containerd_namespace": runtime.DefaultNamespace,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(root.logging(stderr))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	logger.Debug("build", "version", internal.VersionString())
	logger.Debug("rpmlb is running", "pid", os.Getpid(), "cwd", cwd(), "args", args)

	kongCtx.Bind(logger)
	kongCtx.Bind(&Output{Out: stdout, Err: stderr, Echo: root.Verbose || root.Debug})

	return kongCtx.Run()
}

// Merges build-time defaults with the parsed flags.
func (r *RootCmd) logging(stream io.Writer) logging.Config {
	return logging.Config{
		Debug:   r.Debug || internal.IsDebug(),
		Quiet:   r.Quiet || internal.IsQuiet(),
		Verbose: r.Verbose || internal.IsVerbose(),
		Format:  r.LogFormat,
		Stream:  stream,
	}
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
