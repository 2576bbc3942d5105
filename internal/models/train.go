package models

import (
	"fmt"
	"strings"
)

// NotAvailable is displayed for optional fields the API did not provide
const NotAvailable = "N/A"

// TrainDetails represents a train returned by the schedule API
type TrainDetails struct {
	TrainNumber     string           `json:"trainNumber"`
	TrainName       string           `json:"trainName"`
	NextStation     *NextStation     `json:"nextStation,omitempty"`
	Services        []string         `json:"services,omitempty"`
	PlatformDetails *PlatformDetails `json:"platformDetails,omitempty"`
	CoachDetails    []Coach          `json:"coachDetails,omitempty"`
}

// NextStation is the station the train will reach next
type NextStation struct {
	Name string `json:"name"`
}

// PlatformDetails holds the platform assignment
type PlatformDetails struct {
	PlatformNumber string `json:"platformNumber"`
}

// Coach represents a single coach in the train's composition
type Coach struct {
	CoachNumber string `json:"coachNumber"`
	CoachType   string `json:"coachType"` // e.g. "3A", "SL"
}

// String returns "{number} ({type})"
func (c Coach) String() string {
	return fmt.Sprintf("%s (%s)", c.CoachNumber, c.CoachType)
}

// Field is one labelled, read-only value of a train
type Field struct {
	Label string
	Value string
}

// Field labels in display order
const (
	LabelTrainNumber = "Train Number"
	LabelTrainName   = "Train Name"
	LabelNextStation = "Next Station"
	LabelServices    = "Services"
	LabelPlatform    = "Platform Details"
	LabelCoaches     = "Coach Details"
)

// NextStationName returns the next station name or N/A
func (t *TrainDetails) NextStationName() string {
	if t.NextStation == nil {
		return NotAvailable
	}
	return orNotAvailable(t.NextStation.Name)
}

// ServicesLabel returns the services joined by ", " or N/A
func (t *TrainDetails) ServicesLabel() string {
	return orNotAvailable(strings.Join(t.Services, ", "))
}

// PlatformLabel returns the platform number or N/A
func (t *TrainDetails) PlatformLabel() string {
	if t.PlatformDetails == nil {
		return NotAvailable
	}
	return orNotAvailable(t.PlatformDetails.PlatformNumber)
}

// CoachesLabel returns the coaches as "A1 (3A), B2 (SL)" or N/A
func (t *TrainDetails) CoachesLabel() string {
	parts := make([]string, 0, len(t.CoachDetails))
	for _, c := range t.CoachDetails {
		parts = append(parts, c.String())
	}
	return orNotAvailable(strings.Join(parts, ", "))
}

// Fields returns all display fields in the order they are rendered.
// Train number and name are shown as received, even when empty.
func (t *TrainDetails) Fields() []Field {
	return []Field{
		{Label: LabelTrainNumber, Value: t.TrainNumber},
		{Label: LabelTrainName, Value: t.TrainName},
		{Label: LabelNextStation, Value: t.NextStationName()},
		{Label: LabelServices, Value: t.ServicesLabel()},
		{Label: LabelPlatform, Value: t.PlatformLabel()},
		{Label: LabelCoaches, Value: t.CoachesLabel()},
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
