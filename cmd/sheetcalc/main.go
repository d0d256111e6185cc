// Package main is the entry point for the sheetcalc server and CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/benchwise/sheetcalc/pkg/eval"
	"github.com/benchwise/sheetcalc/pkg/sheet"
	"github.com/benchwise/sheetcalc/pkg/store"
	"github.com/benchwise/sheetcalc/pkg/types"
	"github.com/benchwise/sheetcalc/web"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sheetcalc",
	Short: "Spreadsheet formula evaluator and sheet server",
	RunE:  runServe,
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a cell or an ad-hoc formula against a model",
	RunE:  runEval,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("sheetcalc version {{.Version}}\n")

	rootCmd.Flags().Int("port", 0, "HTTP server port (default 8787, env PORT)")
	rootCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	rootCmd.PersistentFlags().String("model", "", "Path to converted model JSON (env MODEL)")

	evalCmd.Flags().String("sheet", "", "Sheet name (default: first sheet)")
	evalCmd.Flags().String("cell", "", "Cell reference to evaluate")
	evalCmd.Flags().String("formula", "", "Ad-hoc formula to evaluate")
	rootCmd.AddCommand(evalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	port := envOrDefault("PORT", "8787")
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		port = fmt.Sprintf("%d", v)
	}

	host := envOrDefault("HOST", "0.0.0.0")
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		host = v
	}

	model, err := loadModel(cmd)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	server := web.New(model, store.New())

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down sheetcalc...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("sheetcalc listening on %s (model=%s, sheets=%d)", addr, model.Source, len(model.Sheets))
	return server.Listen(addr)
}

func runEval(cmd *cobra.Command, args []string) error {
	model, err := loadModel(cmd)
	if err != nil {
		return err
	}

	sheetName, _ := cmd.Flags().GetString("sheet")
	if sheetName == "" {
		names := model.SheetNames()
		sheetName = names[0]
	}
	sh, ok := model.Sheet(sheetName)
	if !ok {
		return fmt.Errorf("sheet '%s' not found in model", sheetName)
	}

	ev := eval.New(sh, model.Formula, nil)

	if cell, _ := cmd.Flags().GetString("cell"); cell != "" {
		v, err := ev.EvaluateCell(cell)
		if err != nil {
			return err
		}
		fmt.Println(types.Display(v))
		return nil
	}

	if src, _ := cmd.Flags().GetString("formula"); src != "" {
		v, err := ev.EvaluateFormula(src)
		if err != nil {
			return err
		}
		fmt.Println(types.Display(v))
		return nil
	}

	return fmt.Errorf("either --cell or --formula is required")
}

func loadModel(cmd *cobra.Command) (*sheet.Model, error) {
	path := os.Getenv("MODEL")
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		path = v
	}
	if path == "" {
		return nil, fmt.Errorf("--model (or env MODEL) is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	return sheet.Load(data)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
