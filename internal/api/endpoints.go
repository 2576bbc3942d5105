package api

const (
	// BaseURL is the default root of the Station Saarthi API
	BaseURL = "http://localhost:3000"

	// EndpointTrain looks up a train by number or name.
	// The query is appended as a single escaped path segment: /train/{query}
	EndpointTrain = "/train"
)
