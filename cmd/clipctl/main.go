package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stackslice/config"
	"stackslice/internal/service"
	"stackslice/internal/types"
	"stackslice/log"
)

var (
	inputPath   string
	outputDir   string
	targetClips int
)

// consoleStore prints job progress instead of persisting it, so clipctl runs
// without a database.
type consoleStore struct{}

func (consoleStore) UpdateJobStatus(jobId, status, message string) error {
	fmt.Printf("[%s] %s\n", status, message)
	return nil
}

func (consoleStore) UpdateJobResults(jobId string, results *types.JobResults) error {
	fmt.Printf("\nHooks:\n")
	for i, hook := range results.ViralHooks {
		fmt.Printf("  %d. %s\n", i+1, hook)
	}
	fmt.Printf("\nCaptions: %d\n", len(results.Captions))
	fmt.Printf("Clips:\n")
	for _, clip := range results.Clips {
		fmt.Printf("  #%02d  %7.1fs - %7.1fs  %s\n", clip.Sequence, clip.StartTime, clip.EndTime, clip.Description)
	}
	fmt.Printf("\nArchive: %s\n", results.ArchivePath)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "clipctl",
	Short: "Generate viral clips, hooks and captions from a local video",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline on a local video file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(inputPath); err != nil {
			return fmt.Errorf("input video: %w", err)
		}

		if _, err := config.LoadOrCreateConfig(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.CheckConfig(); err != nil {
			return fmt.Errorf("check config: %w", err)
		}
		if outputDir != "" {
			config.Conf.App.OutputDir = outputDir
		}
		if targetClips > 0 {
			config.Conf.Generate.TargetClips = targetClips
		}

		log.SetLogDir(config.Conf.App.LogDir)
		log.InitLogger()
		defer log.GetLogger().Sync()

		svc := service.NewService(&config.Conf)
		svc.Store = consoleStore{}
		svc.Uploader = nil

		jobId := strings.Split(uuid.NewString(), "-")[0]
		fmt.Printf("Processing %s (job %s)\n", inputPath, jobId)
		svc.ProcessVideoJob(jobId, inputPath)
		return nil
	},
}

func main() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the source video (required)")
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the results archive")
	runCmd.Flags().IntVar(&targetClips, "clips", 0, "number of clips to extract")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
