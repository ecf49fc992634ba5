package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/rangelogic/describe"
	"github.com/gnoverse/rangelogic/formatter"
)

var (
	describeJsonOutput bool
	outPath            string
	watchFiles         bool
)

var describeCmd = &cobra.Command{
	Use:   "describe [paths...]",
	Short: "Describe the conditions and values of scenario files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := describe.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize describe engine", zap.Error(err))
		}

		if err := runDescribeProcess(ctx, logger, engine, args, os.Stdout, describeJsonOutput, outPath); err != nil {
			logger.Error("Error describing files", zap.Error(err))
			os.Exit(1)
		}

		if watchFiles {
			if err := watchDescribe(logger, engine, args, os.Stdout); err != nil {
				logger.Error("Error watching files", zap.Error(err))
				os.Exit(1)
			}
		}
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeJsonOutput, "json", false, "Output descriptions in JSON format")
	describeCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	describeCmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Describe files again whenever they change")
}

func watchDescribe(logger *zap.Logger, engine describe.DescribeEngine, paths []string, w io.Writer) error {
	watcher, err := describe.NewWatcher(logger, engine)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = watcher.Watch(ctx, func(_ string, descs []describe.Description, err error) {
		if err != nil {
			return
		}
		_, _ = fmt.Fprint(w, formatter.FormatDescriptions(descs))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runDescribeProcess(
	ctx context.Context,
	logger *zap.Logger,
	engine describe.DescribeEngine,
	paths []string,
	w io.Writer,
	isJson bool,
	jsonOutput string,
) error {
	descs, err := describe.ProcessFiles(ctx, logger, engine, paths, describe.ProcessFile)
	if err != nil {
		return err
	}
	return printDescriptions(w, descs, isJson, jsonOutput)
}

func printDescriptions(w io.Writer, descs []describe.Description, isJson bool, jsonOutput string) error {
	if !isJson {
		_, err := fmt.Fprint(w, formatter.FormatDescriptions(descs))
		return err
	}

	d, err := json.Marshal(descs)
	if err != nil {
		return fmt.Errorf("error marshalling descriptions to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
