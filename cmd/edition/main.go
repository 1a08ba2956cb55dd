package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/newsfixed/edition/internal/ai"
	"github.com/newsfixed/edition/internal/curation"
	"github.com/newsfixed/edition/internal/grouping"
	"github.com/newsfixed/edition/internal/ingest"
	"github.com/newsfixed/edition/internal/news"
	"github.com/newsfixed/edition/internal/output"
	"github.com/newsfixed/edition/internal/storage"
	"github.com/newsfixed/edition/internal/themes"
	"github.com/newsfixed/edition/internal/tui"
)

var (
	configPath   string
	cfg          *storage.Config
	outputFormat string
	offline      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "edition",
		Short: "Partition classified news stories into four themed daily editions and curate the result",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, text, human (default: json)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip all model calls; themes stay default and grouping is deterministic")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(curateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(blocklistCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = storage.DefaultConfig()
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg = storage.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// modelCalls builds the two model call functions, one per pipeline
// stage. Both are nil under --offline or curation.offline, which
// degrades the whole pipeline to defaults plus the deterministic
// fallback.
func modelCalls() (themeCall, groupCall ai.CallFunc, err error) {
	if offline || cfg.Curation.Offline {
		return nil, nil, nil
	}
	themeCall, err = ai.NewOllamaCall(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Temperatures.Themes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create themes model call: %w", err)
	}
	groupCall, err = ai.NewOllamaCall(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Temperatures.Grouping)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create grouping model call: %w", err)
	}
	return themeCall, groupCall, nil
}

// loadAndPlan is the shared front half of plan and curate: ingest the
// batch, extend its blocklist with stored rejections, and run the
// assignment pipeline.
func loadAndPlan(ctx context.Context, path string, formatter *output.Formatter) (*ingest.Batch, *news.Assignment, *grouping.Engine, error) {
	batch, err := ingest.LoadBatch(path)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	blocklisted := append([]int{}, batch.BlocklistedIDs...)
	seen := make(map[int]bool, len(blocklisted))
	for _, id := range blocklisted {
		seen[id] = true
	}
	for _, s := range batch.Stories {
		if s.SourceURL == "" || seen[s.ID] {
			continue
		}
		rejected, err := store.IsRejected(s.SourceURL)
		if err != nil {
			formatter.Warning("blocklist lookup failed for story %d: %v", s.ID, err)
			continue
		}
		if rejected {
			blocklisted = append(blocklisted, s.ID)
			seen[s.ID] = true
		}
	}

	themeCall, groupCall, err := modelCalls()
	if err != nil {
		return nil, nil, nil, err
	}

	assessment := themes.Assess(batch.Stories)
	themeSet := themes.NewProposer(themeCall).Propose(ctx, batch.Stories, assessment)

	grouper := grouping.NewEngine(groupCall)
	result := grouper.Group(ctx, batch.Stories, blocklisted, themeSet)
	assignment := grouping.Build(batch.Stories, result, themeSet, assessment)

	return batch, assignment, grouper, nil
}

func planCmd() *cobra.Command {
	var savePath string
	cmd := &cobra.Command{
		Use:   "plan [batch-file]",
		Short: "Run the assignment pipeline over a classified batch and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))
			ctx := cmd.Context()

			_, assignment, _, err := loadAndPlan(ctx, args[0], formatter)
			if err != nil {
				return err
			}

			if savePath != "" {
				session := curation.NewSession(assignment)
				issues, err := session.Save(savePath)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					formatter.Warning("day %d: %s", issue.Day, issue.Message)
				}
			}

			return formatter.OutputAssignment(assignment)
		},
	}
	cmd.Flags().StringVarP(&savePath, "save", "s", "", "also write the plan snapshot to this path")
	return cmd
}

func curateCmd() *cobra.Command {
	var savePath string
	cmd := &cobra.Command{
		Use:   "curate [batch-file]",
		Short: "Plan a batch, then review and adjust the result interactively before saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))
			ctx := cmd.Context()
			if savePath == "" {
				savePath = "./selection.json"
			}

			batch, assignment, grouper, err := loadAndPlan(ctx, args[0], formatter)
			if err != nil {
				return err
			}

			session := curation.NewSession(assignment)
			session.SetRegrouper(grouper)

			saved, err := tui.Run(session, savePath)
			if err != nil {
				return err
			}
			if !saved {
				formatter.Warning("curation abandoned, nothing saved")
				return nil
			}

			store, err := storage.NewStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			working := session.Working()
			if _, err := store.RecordSelection(storage.Selection{
				BatchID:      batch.ID,
				SavedAt:      time.Now(),
				SnapshotPath: savePath,
				StoryCount:   len(batch.Stories),
				UnusedCount:  len(working.Unused),
				ChangeCount:  len(session.ChangeLog()),
			}); err != nil {
				formatter.Warning("failed to record selection: %v", err)
			}

			fmt.Printf("Saved selection to %s (%d changes)\n", savePath, len(session.ChangeLog()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&savePath, "save", "s", "", "snapshot output path (default: ./selection.json)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [snapshot-file]",
		Short: "Check a saved selection snapshot for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			snap, err := curation.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			assignment, _ := curation.AssignmentFromSnapshot(snap)
			session := curation.NewSession(assignment)

			issues := session.Validate()
			if err := formatter.OutputIssues(issues); err != nil {
				return err
			}
			if curation.Blocking(issues) {
				return fmt.Errorf("snapshot has blocking issues")
			}
			return nil
		},
	}
}

func blocklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocklist",
		Short: "Manage rejected source URLs excluded from every future plan",
	}

	var reason string
	addCmd := &cobra.Command{
		Use:   "add [source-url]",
		Short: "Reject a source URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if err := store.AddRejection(args[0], reason); err != nil {
				return err
			}
			fmt.Printf("Blocked %s\n", args[0])
			return nil
		},
	}
	addCmd.Flags().StringVarP(&reason, "reason", "r", "", "why this source is rejected")

	removeCmd := &cobra.Command{
		Use:   "remove [source-url]",
		Short: "Clear a rejection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if err := store.RemoveRejection(args[0]); err != nil {
				return err
			}
			fmt.Printf("Unblocked %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List rejected source URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := storage.NewStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			rejections, err := store.ListRejections()
			if err != nil {
				return err
			}
			return formatter.OutputRejections(rejections)
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(listCmd)
	return cmd
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved selections, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := storage.NewStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			selections, err := store.ListSelections(limit)
			if err != nil {
				return err
			}
			return formatter.OutputSelections(selections)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum selections to show")
	return cmd
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = "./config/config.yaml"
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}

			data, err := yaml.Marshal(storage.DefaultConfig())
			if err != nil {
				return err
			}

			if dir := filepath.Dir(path); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}
}
