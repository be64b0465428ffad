package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/heft/pkg/config"
	"github.com/odvcencio/heft/pkg/gitcmd"
	"github.com/odvcencio/heft/pkg/graph"
	"github.com/odvcencio/heft/pkg/object"
)

// process builds the graph data without reporting on it. Its main use is
// warming a dependency cache so later report runs skip the per-commit git
// calls.
func newProcessCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		saveDeps   string
		workers    int
		all        bool
		commits    bool
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process repository data without reporting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if saveDeps == "" {
				saveDeps = cfg.Resolve.Cache
			}
			if workers == 0 {
				workers = cfg.Resolve.Workers
			}

			ctx := cmd.Context()
			runner := gitcmd.ExecRunner{}
			obs := graph.WriterObserver{W: cmd.OutOrStdout()}
			container := object.NewContainer()

			if err := graph.LoadObjects(ctx, runner, repoPath, container, obs); err != nil {
				return err
			}

			if all || commits {
				deps, err := graph.ResolveDeps(ctx, runner, repoPath, container,
					graph.ResolveOptions{Workers: workers, CachePath: saveDeps}, obs)
				if err != nil {
					return err
				}
				graph.LinkDeps(deps, container, obs)
			}
			if all || labels {
				graph.ResolveTags(ctx, runner, repoPath, container, obs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoPath, "repo", "r", "", "path to the git repository to analyze")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to a heft.toml config file")
	cmd.Flags().StringVarP(&saveDeps, "save-deps", "s", "", "dependency cache file: created when absent, loaded when present (.zst for compression)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "git worker pool size (default: half the CPUs)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "process commit deps and tags")
	cmd.Flags().BoolVarP(&commits, "commits", "c", false, "process commit deps only")
	// -t would collide with the report command's --trees habit; tags are
	// processed under --labels.
	cmd.Flags().BoolVarP(&labels, "labels", "l", false, "process tags only")
	cmd.MarkFlagRequired("repo")
	return cmd
}
