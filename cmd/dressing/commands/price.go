package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dressing-calculator/form"
	"dressing-calculator/models"
	"dressing-calculator/service"
)

// formFlags mirrors the calculator form on the command line
type formFlags struct {
	width        string
	height       string
	noChambranle bool
	noFacade     bool
	slide        string
	slides       string
	zone         string
	discount     string
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.width, "width", "", "width in meters")
	cmd.Flags().StringVar(&f.height, "height", "", "height in meters")
	cmd.Flags().BoolVar(&f.noChambranle, "no-chambranle", false, "without door-frame surround")
	cmd.Flags().BoolVar(&f.noFacade, "no-facade", false, "without front panels")
	cmd.Flags().StringVar(&f.slide, "slide", "scala", "slide type: scala or metabox")
	cmd.Flags().StringVar(&f.slides, "slides", "0", "number of slides")
	cmd.Flags().StringVar(&f.zone, "zone", "", "transport zone id (default: first zone, see 'dressing zones')")
	cmd.Flags().StringVar(&f.discount, "discount", "0", "discount percent, 0 to 100")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
}

func (f *formFlags) request() models.CalculateRequest {
	chambranle := !f.noChambranle
	facade := !f.noFacade
	return models.CalculateRequest{
		Width:           f.width,
		Height:          f.height,
		HasChambranle:   &chambranle,
		HasFacade:       &facade,
		SlideType:       f.slide,
		SlideCount:      f.slides,
		TransportZone:   f.zone,
		DiscountPercent: f.discount,
	}
}

// evaluate prices the flags and turns an incomplete or invalid form into an
// error listing the field messages
func (f *formFlags) evaluate() (form.State, error) {
	state, err := form.EvaluateRequest(engine, f.request())
	if err != nil {
		return state, err
	}
	if state.Calculated() {
		return state, nil
	}

	msgs := state.ErrorMessages()
	if len(msgs) == 0 {
		return state, fmt.Errorf("form is %s", state.Status)
	}
	fields := make([]string, 0, len(msgs))
	for field := range msgs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = msgs[field]
	}
	return state, fmt.Errorf("invalid form: %s", strings.Join(parts, "; "))
}

func priceCmd() *cobra.Command {
	var flags formFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute the tax-inclusive price of a dressing",
		Example: `  dressing price --width 2 --height 2 --slides 2 --zone tunis --discount 10
  dressing price --width 1.8 --height 2.4 --no-facade --slide metabox --slides 4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.evaluate()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state.Response(engine.Tariff().Currency))
			}

			quote, err := service.NewQuote(engine.Tariff(), &state, time.Now())
			if err != nil {
				return err
			}
			return printQuote(cmd.OutOrStdout(), quote)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response as JSON")
	return cmd
}

func printQuote(out io.Writer, q *service.Quote) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Type\t%s\t\n", q.Options)
	for _, line := range q.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", line.Label, line.Detail, q.FormatAmount(line.Amount))
	}
	fmt.Fprintf(tw, "Prix Total TTC\t\t%s\t\n", q.Total())
	return tw.Flush()
}
