package cli

import (
	"fmt"

	"github.com/raphaelgruber/spheres-go/internal/client"
	"github.com/raphaelgruber/spheres-go/internal/jsontree"
	"github.com/raphaelgruber/spheres-go/internal/service"
	"github.com/spf13/cobra"
)

var (
	decodeFile    string
	decodeCompact bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Check a sphere payload and summarize its shape",
	Long: `Decode a sphere payload without filtering it. Reports the root kind,
how many array elements are sphere objects, and how many were skipped.

Examples:
  spheres decode --file spheres.json
  spheres decode --file - --compact < spheres.json`,
	Args: cobra.NoArgs,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "-", "payload file ('-' for stdin)")
	decodeCmd.Flags().BoolVar(&decodeCompact, "compact", false, "print the payload re-encoded as compact JSON")
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw, err := client.FileFetcher{Path: decodeFile, Stdin: cmd.InOrStdin()}.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	root, err := jsontree.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	out := cmd.OutOrStdout()
	if decodeCompact {
		data, err := jsontree.Encode(root)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	records := service.ExtractSpheres(root)
	fmt.Fprintf(out, "Root: %s\n", root.Kind())
	if root.Is(jsontree.KindArray) {
		fmt.Fprintf(out, "Elements: %d\n", root.Len())
		fmt.Fprintf(out, "Sphere objects: %d\n", len(records))
		fmt.Fprintf(out, "Skipped: %d\n", root.Len()-len(records))
	} else {
		fmt.Fprintln(out, "Root is not an array; no spheres would be imported.")
	}

	logger.Debug("decoded payload", "bytes", len(raw), "kind", root.Kind().String(), "spheres", len(records))
	return nil
}
