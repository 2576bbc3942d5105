package output

import (
	"fmt"
	"io"

	"github.com/station-saarthi/saarthi-cli/internal/models"
)

const labelWidth = 18

// Options configures text output
type Options struct {
	Colors *Colors
}

func (o Options) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderTrain renders a train as a card of read-only fields
func RenderTrain(w io.Writer, train *models.TrainDetails, opts Options) {
	c := opts.colors()

	if train == nil {
		_, _ = fmt.Fprintln(w, c.Muted("No train details."))
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Train Schedule:"), c.Number(train.TrainNumber))

	for _, f := range train.Fields() {
		value := f.Value
		switch {
		case value == models.NotAvailable:
			value = c.Muted(value)
		case f.Label == models.LabelTrainNumber:
			value = c.Number(value)
		case f.Label == models.LabelPlatform:
			value = c.Platform(value)
		default:
			value = c.Value(value)
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Label("%-*s", labelWidth, f.Label), value)
	}
}

// RenderLookupError renders the user-facing message for a failed query
func RenderLookupError(w io.Writer, query, message string, opts Options) {
	c := opts.colors()
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Error("%q:", query), c.Error(message))
}
