package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nconklindev/xlcombine/internal/config"
	"github.com/nconklindev/xlcombine/internal/converter"
	"github.com/nconklindev/xlcombine/internal/logging"
	"github.com/nconklindev/xlcombine/internal/types"
	"github.com/nconklindev/xlcombine/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// UsageError reports missing or malformed positional arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// positionalArgs requires the rows-to-skip and column-to-drop integers.
// Extra arguments are ignored.
func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &UsageError{Msg: "please include the number of initial rows to skip, and the index of the single column to be skipped in the output"}
	}
	for i, name := range []string{"rows-to-skip", "column-to-drop"} {
		if _, err := strconv.Atoi(args[i]); err != nil {
			return &UsageError{Msg: fmt.Sprintf("%s must be an integer, got %q", name, args[i])}
		}
	}
	return nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   "xlcombine <rows-to-skip> <column-to-drop>",
		Short: "Combine the spreadsheets in a directory into one csv file",
		Long: `xlcombine reads the first sheet of every .xlsx file in a directory and appends
its rows to a single combined_file.csv in that directory.

The first <rows-to-skip> rows of each sheet are skipped, rows whose first cell is
"Total" or empty are dropped, the column at <column-to-drop> (0-based) is removed,
and numbers written like "1042.0" are rewritten as "1042". Every field of the
output is quoted.`,
		Version:       version,
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			return run(v, cfgFile, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(fmt.Sprintf("xlcombine {{.Version}}\ncommit: %s\nbuilt: %s\n", commit, date))

	flags := cmd.Flags()
	flags.String("config", "", "config file (default: ./xlcombine.yaml or ~/.config/xlcombine/xlcombine.yaml)")
	flags.StringP("dir", "d", ".", "directory holding the spreadsheets; the output is written here too")
	flags.StringP("output", "o", converter.DefaultOutputName, "name of the combined csv file")
	flags.String("extension", converter.DefaultExtension, "case-sensitive file name suffix of the spreadsheets to combine")
	flags.String("order", string(converter.OrderName), "file order: name (sorted) or listing (directory order)")
	flags.Bool("stamp-date", false, "prepend the yyyy-mm-dd date encoded in file names like a_b_mmddyy")
	flags.StringSlice("blank-value", nil, "cell text to replace with an empty value (repeatable)")
	flags.Bool("progress", false, "show an interactive progress view")
	flags.BoolP("verbose", "V", false, "log every excluded row")

	for key, flag := range map[string]string{
		config.KeyDir:         "dir",
		config.KeyOutput:      "output",
		config.KeyExtension:   "extension",
		config.KeyOrder:       "order",
		config.KeyStampDate:   "stamp-date",
		config.KeyBlankValues: "blank-value",
		config.KeyProgress:    "progress",
		config.KeyVerbose:     "verbose",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(v *viper.Viper, cfgFile string, args []string, stdout, stderr io.Writer) error {
	usedFile, err := config.ReadFile(v, cfgFile)
	if err != nil {
		return err
	}

	// positionalArgs has already checked both values.
	skipRows, _ := strconv.Atoi(args[0])
	dropColumn, _ := strconv.Atoi(args[1])

	cfg, err := config.Load(v, skipRows, dropColumn)
	if err != nil {
		return err
	}

	logger := logging.New(stderr, cfg.Verbose)
	if usedFile != "" {
		logger.Info("using config file", "path", usedFile)
	}

	opts := cfg.Options()
	opts.Logger = logger

	var result *types.CombineResult
	if cfg.Progress {
		result, err = runWithProgress(opts, stdout)
	} else {
		result, err = converter.Combine(opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, ui.RenderSummary(result))
	return nil
}

// runWithProgress hands the terminal to the progress view. Log output is
// suppressed while it is shown.
func runWithProgress(opts converter.Options, stdout io.Writer) (*types.CombineResult, error) {
	opts.Logger = logging.Discard()

	final, err := tea.NewProgram(ui.NewModel(opts), tea.WithOutput(stdout)).Run()
	if err != nil {
		return nil, err
	}

	model := final.(ui.Model)
	if err := model.Err(); err != nil {
		return nil, err
	}
	return model.Result(), nil
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, ui.RenderError(err))

		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, "Usage:", cmd.UseLine())
		}
		os.Exit(1)
	}
}
