package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/heft/pkg/config"
	"github.com/odvcencio/heft/pkg/gitcmd"
	"github.com/odvcencio/heft/pkg/graph"
	"github.com/odvcencio/heft/pkg/object"
	"github.com/odvcencio/heft/pkg/report"
)

func newReportCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		saveDeps   string
		workers    int
		all        bool
		commits    bool
		trees      bool
		blobs      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report repository size information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && !commits && !trees && !blobs {
				return fmt.Errorf("choose one of --all, --commits, --trees, --blobs")
			}

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
			out := cmd.OutOrStdout()
			runner := gitcmd.ExecRunner{}
			obs := graph.WriterObserver{W: out}
			container := object.NewContainer()

			if err := graph.LoadObjects(ctx, runner, repoPath, container, obs); err != nil {
				return err
			}
			deps, err := graph.ResolveDeps(ctx, runner, repoPath, container,
				graph.ResolveOptions{Workers: workers, CachePath: saveDeps}, obs)
			if err != nil {
				return err
			}
			graph.LinkDeps(deps, container, obs)

			switch {
			case all:
				graph.ResolveTags(ctx, runner, repoPath, container, obs)
				report.All(container, out, cfg.Report.Top)
			case commits:
				report.Commits(container, out)
			case trees:
				report.Trees(container, out)
			case blobs:
				report.Blobs(container, out, cfg.Report.Top)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoPath, "repo", "r", "", "path to the git repository to analyze")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to a heft.toml config file")
	cmd.Flags().StringVarP(&saveDeps, "save-deps", "s", "", "dependency cache file: created when absent, loaded when present (.zst for compression)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "git worker pool size (default: half the CPUs)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "report commits, trees, and blobs (includes tags)")
	cmd.Flags().BoolVarP(&commits, "commits", "c", false, "report commit sizes")
	cmd.Flags().BoolVarP(&trees, "trees", "t", false, "report tree sizes and duplicated paths")
	cmd.Flags().BoolVarP(&blobs, "blobs", "b", false, "report blob sizes")
	cmd.MarkFlagRequired("repo")
	return cmd
}
