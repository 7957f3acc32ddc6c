package circarr

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"xorkevin.dev/circarr/util/kjson"
	"xorkevin.dev/circarr/util/ringbuf"
	"xorkevin.dev/kerrors"
	"xorkevin.dev/klog"
)

type (
	// Opts are the cli options
	Opts struct {
		Appname     string
		Version     Version
		Description string
		DefaultFile string
		EnvPrefix   string
		// ConfigReader replaces reading the config file if set
		ConfigReader io.Reader
		// LogWriter overrides the configured log output if set
		LogWriter  io.Writer
		TermConfig *TermConfig
	}

	// Cmd is the circ cli
	Cmd struct {
		opts       Opts
		settings   *settings
		term       *terminal
		log        *klog.LevelLogger
		cmd        *cobra.Command
		configFile string
		showFlags  showFlags
		format     string
	}

	showFlags struct {
		rotate    []int
		get       int
		itemsJSON string
	}
)

// NewCmd creates a new [*Cmd]
func NewCmd(opts Opts) *Cmd {
	if opts.DefaultFile == "" {
		opts.DefaultFile = opts.Appname
	}
	c := &Cmd{
		opts:     opts,
		settings: newSettings(opts),
		term:     newTerminal(opts.TermConfig),
		log:      klog.NewLevelLogger(klog.Discard{}),
	}
	c.initCmd()
	return c
}

func (c *Cmd) initCmd() {
	rootCmd := &cobra.Command{
		Use:   c.opts.Appname,
		Short: c.opts.Description,
		Long: c.opts.Description + `

A circular array may be appended to, rotated, and indexed without moving its
items on rotation.`,
		Version: c.opts.Version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", fmt.Sprintf("config file (default is $XDG_CONFIG_HOME/%s/%s.yaml)", c.opts.Appname, c.opts.DefaultFile))
	rootCmd.PersistentFlags().StringVarP(&c.format, "format", "f", "", "output format: text, json, or yaml (default from config)")

	showCmd := &cobra.Command{
		Use:   "show [items...]",
		Short: "prints a rotated circular array",
		Long: `Prints a rotated circular array

Items are appended in order, from the args followed by the --items-json array,
or else the items config, then each rotation is applied. Prints the array in
its logical order, or the single item at --get.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(cmd.Context(), args, cmd.Flags().Changed("get"))
		},
		DisableAutoGenTag: true,
	}
	showCmd.Flags().IntSliceVarP(&c.showFlags.rotate, "rotate", "r", nil, "rotate by a signed delta (repeatable)")
	showCmd.Flags().IntVarP(&c.showFlags.get, "get", "g", 0, "print only the item at this logical index in the output format")
	showCmd.Flags().StringVar(&c.showFlags.itemsJSON, "items-json", "", "json array of items to append after the args")

	execCmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "runs a script of circular array operations",
		Long: `Runs a script of circular array operations

Each line is one of: append <item>, rotate <delta>, get <index>, print, len.
Blank lines and lines starting with # are skipped. The script is read from the
file arg, else the script config, else stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := c.settings.config.Script
			if len(args) > 0 {
				name = args[0]
			}
			return c.exec(cmd.Context(), name)
		},
		DisableAutoGenTag: true,
	}

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "runs the worked examples",
		Long: `Runs the worked examples

Prints a banner if every example passes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SelfTest(cmd.Context(), c.log.Logger, c.term.stdout)
		},
		DisableAutoGenTag: true,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.term.stdout, c.opts.Appname, c.opts.Version.String())
		},
		DisableAutoGenTag: true,
	}

	rootCmd.AddCommand(showCmd, execCmd, selftestCmd, versionCmd)
	rootCmd.SetIn(c.term.stdin)
	rootCmd.SetOut(c.term.stdout)
	rootCmd.SetErr(c.term.stderr)

	c.cmd = rootCmd
}

func (c *Cmd) init() error {
	if err := c.settings.init(Flags{
		ConfigFile: c.configFile,
	}); err != nil {
		return err
	}
	c.log = klog.NewLevelLogger(newLogger(c.settings.logger()))
	if c.format == "" {
		c.format = c.settings.config.Format
	}
	if _, err := parseFormat(c.format); err != nil {
		return err
	}
	return nil
}

func (c *Cmd) show(ctx context.Context, args []string, hasGet bool) error {
	items := args
	if c.showFlags.itemsJSON != "" {
		var jitems []string
		if err := kjson.Unmarshal([]byte(c.showFlags.itemsJSON), &jitems); err != nil {
			return kerrors.WithMsg(err, "Invalid items json")
		}
		items = append(items, jitems...)
	}
	if len(items) == 0 {
		items = c.settings.config.Items
	}
	r := ringbuf.New[string]()
	for _, i := range items {
		r.Append(i)
	}
	for _, i := range c.showFlags.rotate {
		r.Rotate(i)
	}
	c.log.Debug(ctx, "Built ring", klog.Fields{
		"circ.len":     r.Len(),
		"circ.rotates": len(c.showFlags.rotate),
	})
	if hasGet {
		m, ok := r.Get(c.showFlags.get)
		return WriteItem(c.term.stdout, c.format, m, ok)
	}
	return WriteRing(c.term.stdout, c.format, r)
}

func (c *Cmd) exec(ctx context.Context, name string) error {
	var src io.Reader
	if name == "" || name == "-" {
		if c.term.isInteractive() {
			fmt.Fprintln(c.term.stderr, "Reading ops from stdin until EOF")
		}
		src = c.term.stdin
	} else {
		f, err := c.term.open(name)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				c.log.Error(ctx, "Failed to close script file", klog.Fields{
					"error": err.Error(),
				})
			}
		}()
		src = f
	}
	s := NewInterp(c.log.Logger, c.term.stdout, c.format)
	if err := s.RunScript(ctx, src); err != nil {
		return kerrors.WithMsg(err, "Failed to run script")
	}
	return nil
}

// ExecArgs runs the cli with args
func (c *Cmd) ExecArgs(args []string) error {
	c.cmd.SetArgs(args)
	return c.cmd.Execute()
}

// Execute runs the cli, exiting on error
func (c *Cmd) Execute() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(c.term.stderr, err)
		c.term.exit(1)
	}
}
