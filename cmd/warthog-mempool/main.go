// Command warthog-mempool is a small demo CLI around package mempool: it
// loads a config file, spins up an empty mempool with a feed-backed event
// sink, and reports a summary. It exists to give the package a runnable
// entry point, the same role the teacher's cmd binaries play for their
// pool — not a production node.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wolsani/warthog/mempool"
	"github.com/wolsani/warthog/mempoolcfg"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "warthog-mempool",
	Short: "warthog-mempool - standalone mempool core demo",
	Long: `warthog-mempool exercises the mempool core in isolation: a bounded
multi-index transaction store, a locked-balance ledger, and the admission,
reconciliation and sampling operations that sit on top of them. It is not a
node; there is no networking or persistence here beyond the config file.`,
	Version: "0.1.0-dev",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "load the configured mempool and print its empty-state summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mempoolcfg.DefaultConfig
		if configFile != "" {
			loaded, err := mempoolcfg.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
		}

		sink := &mempool.FeedEventSink{}
		pool := mempool.New(cfg, sink)

		fmt.Printf("mempool ready: size=%d/%d min_fee=%d\n", pool.Size(), pool.MaxSize(), pool.MinFee())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "mempool config file path")
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
