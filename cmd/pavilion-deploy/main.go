package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollowdust/pavilion/internal/deploy"
)

var opts deploy.Options

var rootCmd = &cobra.Command{
	Use:   "pavilion-deploy",
	Short: "Deploy article content into the assets directory",
	Long: `pavilion-deploy merges converted markdown with hand-edited overrides
into the articles directory the server reads, copies the image tree,
and keeps the docs tree in sync. Every run writes a manifest describing
what it did.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := deploy.NewEngine(opts)
		m, err := engine.Run()
		if err != nil {
			return err
		}

		fmt.Printf("✅ Deploy %s complete\n", m.RunID)
		fmt.Printf("   📄 markdown: %d copied, %d overwritten\n", m.MarkdownCopied, m.MarkdownOverwritten)
		fmt.Printf("   🖼️  images: %d copied\n", m.ImagesCopied)
		if !opts.SkipDocs {
			fmt.Printf("   📚 docs: %d copied, %d updated\n", m.DocsCopied, m.DocsUpdated)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&opts.SourceDir, "input-md", "article/md", "converted markdown source directory")
	rootCmd.Flags().StringVar(&opts.OverlayDir, "input-mod", "article/md_mod", "hand-edited markdown overlay directory")
	rootCmd.Flags().StringVar(&opts.OutputDir, "output", "assets/articles", "output directory served by the site")
	rootCmd.Flags().StringVar(&opts.DocsSrc, "docs-src", "docs", "docs source directory")
	rootCmd.Flags().StringVar(&opts.DocsDest, "docs-dest", "assets/docs", "docs destination directory")
	rootCmd.Flags().BoolVar(&opts.Clean, "clean", false, "wipe the output directory before deploying")
	rootCmd.Flags().BoolVar(&opts.SkipDocs, "no-docs", false, "skip syncing the docs directory")
	rootCmd.Flags().BoolVar(&opts.OnlyDocs, "only-docs", false, "only sync the docs directory")
	rootCmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "no progress output")
	rootCmd.Flags().StringSliceVar(&opts.Excludes, "exclude", nil, "glob patterns to skip (supports **)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
