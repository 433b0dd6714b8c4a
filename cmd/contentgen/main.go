// Command contentgen turns trending topics into article drafts and
// short-video scripts.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "contentgen",
		Short: "Generate explainers and video scripts from a hot list",
		Long: `contentgen pulls trending topics from a hot list, asks a text model for a
markdown explainer per topic, rewrites each explainer as a segmented short-video
script and writes the results to storage or Kafka.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(), newDemoCommand(), newVersionCommand())
	return root
}
