package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/publish"
)

func publishCmd(c *cli) *cobra.Command {
	var (
		name   string
		title  string
		bucket string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "publish FILE",
		Short: "Upload a rendered snapshot to S3",
		Long: `Parse FILE into a tree, render it as a complete page and upload it.

The bucket, prefix, region and endpoint come from the "publish" section
of vtree.json. Credentials are read from AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  vtree publish index.html
  vtree publish --name home --title Home index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			pcfg := c.cfg.Publish
			if bucket != "" {
				pcfg.Bucket = bucket
			}
			if prefix != "" {
				pcfg.Prefix = prefix
			}
			if name == "" {
				name = snapshotName(args[0])
			}

			p := publish.New(c.newPutter(pcfg), pcfg, c.staticOptions())
			res, err := p.Publish(cmd.Context(), t, name, title)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published %s (%d bytes)", res.URI(), res.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Object name (default: input file name)")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default from vtree.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from vtree.json)")

	return cmd
}

// snapshotName derives an object name from the input path.
func snapshotName(path string) string {
	if path == "-" {
		return "index"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
