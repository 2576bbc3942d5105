package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/station-saarthi/saarthi-cli/internal/api"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
	"github.com/station-saarthi/saarthi-cli/internal/models"
	"github.com/station-saarthi/saarthi-cli/internal/output"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query> [<query>...]",
	Short: "Look up trains by number or name",
	Long: `Look up one or more trains by number or name.

Queries are looked up concurrently (see --parallel) and printed in the
order given. A query that fails prints its message on stderr; the command
exits non-zero once all queries are done.

Examples:
  saarthi lookup 12301
  saarthi lookup "Howrah Rajdhani"
  saarthi lookup 12301 12951 --json
  saarthi lookup 12301 --raw-json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runLookup,
}

type outputMode int

const (
	outputText outputMode = iota
	outputJSON
	outputRawJSON
)

// lookupOutcome is the result of one query. Raw is only set in raw mode.
type lookupOutcome struct {
	Query   string
	Details *models.TrainDetails
	Raw     json.RawMessage
	Err     error
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	mode := outputText
	switch {
	case flagRawJSON:
		mode = outputRawJSON
	case flagJSON:
		mode = outputJSON
	}

	outcomes := lookupAll(cmd.Context(), a.client, args, flagParallel, mode == outputRawJSON)
	for _, o := range outcomes {
		status := lookup.StatusSuccess
		if o.Err != nil {
			status = lookup.StatusError
			a.log.Debug().Err(o.Err).Str("query", o.Query).Msg("Lookup failed")
		}
		a.metrics.ObserveLookup(status.String())
	}

	opts := output.Options{Colors: output.NewColors(getColorMode())}
	return writeOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), outcomes, mode, opts)
}

// lookupAll runs every query on a bounded pool and returns the outcomes in
// query order.
func lookupAll(ctx context.Context, client *api.Client, queries []string, parallel int, raw bool) []lookupOutcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel < 1 {
		parallel = 1
	}

	outcomes := make([]lookupOutcome, len(queries))
	p := pool.New().WithMaxGoroutines(parallel)
	for i, q := range queries {
		i, q := i, q
		p.Go(func() {
			o := lookupOutcome{Query: q}
			if raw {
				o.Raw, o.Err = client.GetTrainRaw(ctx, q)
			} else {
				res := lookup.Run(ctx, client, lookup.Ticket{Query: q})
				o.Details, o.Err = res.Details, res.Err
			}
			outcomes[i] = o
		})
	}
	p.Wait()

	return outcomes
}

// writeOutcomes prints successes to stdout and failures to stderr. It
// returns an error when any query failed.
func writeOutcomes(stdout, stderr io.Writer, outcomes []lookupOutcome, mode outputMode, opts output.Options) error {
	failed := 0
	printed := 0

	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			output.RenderLookupError(stderr, o.Query, lookup.Message(o.Err), opts)
			continue
		}

		switch mode {
		case outputRawJSON:
			if err := printPrettyJSON(stdout, o.Raw); err != nil {
				return err
			}
		case outputJSON:
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(o.Details); err != nil {
				return err
			}
		default:
			if printed > 0 {
				_, _ = fmt.Fprintln(stdout)
			}
			output.RenderTrain(stdout, o.Details, opts)
		}
		printed++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(outcomes))
	}
	return nil
}

func printPrettyJSON(w io.Writer, data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		_, _ = fmt.Fprintln(w, string(data))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(prettyJSON)
}
