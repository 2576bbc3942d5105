package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/station-saarthi/saarthi-cli/internal/models"
	"github.com/station-saarthi/saarthi-cli/internal/testutil"
)

func renderPlain(t *testing.T, train *models.TrainDetails) string {
	t.Helper()
	var buf bytes.Buffer
	RenderTrain(&buf, train, Options{Colors: NewColors(ColorNever)})
	return buf.String()
}

// fieldLine finds the rendered line for label
func fieldLine(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), label) {
			return line
		}
	}
	t.Fatalf("no line for %q in:\n%s", label, out)
	return ""
}

func TestRenderTrain_Nil(t *testing.T) {
	testutil.AssertContains(t, renderPlain(t, nil), "No train details")
}

func TestRenderTrain_Minimal(t *testing.T) {
	var train models.TrainDetails
	testutil.AssertNil(t, json.Unmarshal([]byte(testutil.SampleMinimalTrainResponse), &train))

	out := renderPlain(t, &train)
	testutil.AssertContains(t, out, "Train Schedule: 12301")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelTrainName), "Howrah Rajdhani")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelNextStation), "N/A")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelPlatform), "N/A")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelCoaches), "N/A")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelServices), "AC, Pantry")
}

func TestRenderTrain_Full(t *testing.T) {
	var train models.TrainDetails
	testutil.AssertNil(t, json.Unmarshal([]byte(testutil.SampleTrainResponse), &train))

	out := renderPlain(t, &train)
	testutil.AssertContains(t, fieldLine(t, out, models.LabelNextStation), "Vadodara Jn")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelPlatform), "3")
	testutil.AssertContains(t, fieldLine(t, out, models.LabelCoaches), "H1 (1A), A1 (2A)")
	testutil.AssertNotContains(t, out, "N/A")
}

func TestRenderTrain_Coaches(t *testing.T) {
	var train models.TrainDetails
	testutil.AssertNil(t, json.Unmarshal([]byte(testutil.SampleCoachTrainResponse), &train))

	out := renderPlain(t, &train)
	testutil.AssertContains(t, fieldLine(t, out, models.LabelCoaches), "A1 (3A), B2 (SL)")
}

func TestRenderTrain_FieldOrder(t *testing.T) {
	out := renderPlain(t, &models.TrainDetails{TrainNumber: "1", TrainName: "x"})

	last := -1
	for _, label := range []string{
		models.LabelTrainNumber, models.LabelTrainName, models.LabelNextStation,
		models.LabelServices, models.LabelPlatform, models.LabelCoaches,
	} {
		idx := strings.Index(out, label)
		if idx <= last {
			t.Errorf("label %q out of order", label)
		}
		last = idx
	}
}

func TestRenderTrain_NilColors(t *testing.T) {
	var buf bytes.Buffer
	RenderTrain(&buf, &models.TrainDetails{TrainNumber: "12301"}, Options{})
	testutil.AssertContains(t, buf.String(), "12301")
}

func TestRenderLookupError(t *testing.T) {
	var buf bytes.Buffer
	RenderLookupError(&buf, "00000", "Train not found", Options{Colors: NewColors(ColorNever)})
	testutil.AssertEqual(t, buf.String(), "\"00000\": Train not found\n")
}
