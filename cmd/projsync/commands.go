package projsync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/projsync/internal/version"
	"github.com/arthur-debert/projsync/pkg/catalog"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/filesystem"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/options"
	"github.com/arthur-debert/projsync/pkg/packages"
	"github.com/arthur-debert/projsync/pkg/paths"
	"github.com/arthur-debert/projsync/pkg/task"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/arthur-debert/projsync/pkg/ui"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// projectFlags are shared by every command that works on a project.
type projectFlags struct {
	dir  string
	opts []string
}

func (p *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.dir, "project", "p", "", MsgFlagProject)
	cmd.Flags().StringArrayVarP(&p.opts, "opt", "o", nil, MsgFlagOpt)
}

func (p *projectFlags) root() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read working directory")
	}
	root, err := paths.FindProjectRoot(filesystem.NewOS(), p.dir, cwd)
	if err != nil {
		return "", err
	}
	if root.UsedFallback {
		logger := logging.GetLogger("cli")
		logger.Warn().
			Str("dir", root.Path).
			Msg(MsgWarnNoManifest)
	}
	return root.Path, nil
}

// resolved is everything a command needs to act on one task.
type resolved struct {
	fs      types.FS
	root    string
	catalog *catalog.Catalog
	config  *options.Config
}

func (p *projectFlags) resolve(taskName string) (*resolved, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	fsys := filesystem.NewOS()

	registry, err := catalog.ForProject(fsys, root)
	if err != nil {
		return nil, err
	}
	c, err := registry.Lookup(taskName)
	if err != nil {
		return nil, err
	}

	overrides, err := options.ParseOverrides(p.opts)
	if err != nil {
		return nil, err
	}
	cfg, err := options.Load(options.LoadInput{
		FS:           fsys,
		ProjectDir:   root,
		TaskDefaults: c.Defaults,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, err
	}
	return &resolved{fs: fsys, root: root, catalog: c, config: cfg}, nil
}

func outputFormat(jsonOut bool) ui.Format {
	if jsonOut {
		return ui.FormatJSON
	}
	return ui.FormatAuto
}

// taskNamesCompletion provides shell completion for task names
func taskNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dir, _ := cmd.Flags().GetString("project")
	root, err := (&projectFlags{dir: dir}).root()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	registry, err := catalog.ForProject(filesystem.NewOS(), root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return registry.Names(), cobra.ShellCompDirectiveNoFileComp
}

func newRunCmd() *cobra.Command {
	var (
		project     projectFlags
		dryRun      bool
		skipInstall bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:               "run <task>",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Example:           MsgRunExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.run")
			renderer, err := ui.NewRenderer(outputFormat(jsonOut), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			r, err := project.resolve(args[0])
			if err != nil {
				if jsonOut {
					_ = renderer.RenderError(err)
				}
				return err
			}

			t, err := r.catalog.Task(r.config.Options)
			if err != nil {
				if jsonOut {
					_ = renderer.RenderError(err)
				}
				return err
			}

			installer := packages.NewNodeInstaller(r.fs, r.root, r.config.Install.Manager)
			if r.config.Install.Timeout > 0 {
				installer.Timeout = r.config.Install.Timeout
			}
			composer := task.NewComposer(r.fs, r.root, r.config.Options, installer)
			composer.DryRun = dryRun
			composer.SkipInstall = skipInstall || !r.config.Install.Enabled

			logger.Info().
				Str("task", t.Name).
				Str("project", r.root).
				Bool("dry_run", dryRun).
				Msg("Running task")

			result, err := composer.Run(cmd.Context(), t)
			if err != nil {
				if jsonOut {
					_ = renderer.RenderError(err)
				}
				return err
			}
			if err := renderer.RenderResult(result); err != nil {
				return err
			}

			if result.HasFailures() {
				return errors.Newf(errors.ErrStepExecute, MsgErrRunFailures,
					t.Name, len(result.Failed)+len(result.StepFailures))
			}
			return nil
		},
	}

	project.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, MsgFlagSkipInstall)
	cmd.Flags().BoolVar(&jsonOut, "json", false, MsgFlagJSON)
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		dir     string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := (&projectFlags{dir: dir}).root()
			if err != nil {
				return err
			}
			registry, err := catalog.ForProject(filesystem.NewOS(), root)
			if err != nil {
				return err
			}

			var infos []ui.TaskInfo
			for _, name := range registry.Names() {
				c, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				source := c.Source
				if rel, err := filepath.Rel(root, source); err == nil && filepath.IsAbs(source) {
					source = rel
				}
				infos = append(infos, ui.TaskInfo{Name: c.Name, Description: c.Description, Source: source})
			}

			renderer, err := ui.NewRenderer(outputFormat(jsonOut), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return renderer.RenderTasks(infos)
		},
	}

	cmd.Flags().StringVarP(&dir, "project", "p", "", MsgFlagProject)
	cmd.Flags().BoolVar(&jsonOut, "json", false, MsgFlagJSON)
	return cmd
}

// configView is the TOML shape printed by the config command; it matches
// what .projsync.toml accepts.
type configView struct {
	Install struct {
		Enabled bool   `toml:"enabled"`
		Manager string `toml:"manager"`
		Timeout string `toml:"timeout"`
	} `toml:"install"`
	Options map[string]interface{} `toml:"options"`
}

func newConfigCmd() *cobra.Command {
	var project projectFlags

	cmd := &cobra.Command{
		Use:               "config <task>",
		Short:             MsgConfigShort,
		Long:              MsgConfigLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := project.resolve(args[0])
			if err != nil {
				return err
			}

			var view configView
			view.Install.Enabled = r.config.Install.Enabled
			view.Install.Manager = r.config.Install.Manager
			view.Install.Timeout = r.config.Install.Timeout.String()
			view.Options = r.config.Options.All()

			data, err := toml.Marshal(view)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# effective configuration for %s\n%s", r.catalog.Name, data)
			return err
		},
	}

	project.register(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir).WithPath(dir)
			}
			header := &doc.GenManHeader{
				Title:   "PROJSYNC",
				Section: "1",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot write man pages").WithPath(dir)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}
