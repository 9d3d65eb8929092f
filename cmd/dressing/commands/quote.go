package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dressing-calculator/service"
)

func quoteCmd() *cobra.Command {
	var flags formFlags
	var format, output string

	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Write a quote document for a dressing",
		Example: `  dressing quote --width 2 --height 2 --slides 2 --zone sousse --format xlsx -o devis.xlsx`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			var generate func(*service.Quote) ([]byte, error)
			switch format {
			case "pdf":
				generate = service.GenerateQuotePDF
			case "xlsx":
				generate = service.GenerateQuoteWorkbook
			case "html":
				generate = func(q *service.Quote) ([]byte, error) {
					html, err := service.RenderQuoteHTML(q)
					return []byte(html), err
				}
			default:
				return fmt.Errorf("unknown format %q (pdf, xlsx or html)", format)
			}

			state, err := flags.evaluate()
			if err != nil {
				return err
			}
			quote, err := service.NewQuote(engine.Tariff(), &state, time.Now())
			if err != nil {
				return err
			}

			data, err := generate(quote)
			if err != nil {
				return fmt.Errorf("failed to generate quote: %w", err)
			}

			if output == "" {
				output = fmt.Sprintf("devis-%s.%s", quote.Reference, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", output, quote.Total(), quote.Reference)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "pdf", "document format: pdf, xlsx or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default devis-<reference>.<format>)")
	return cmd
}
