package testutil

// Sample JSON responses for API testing

// SampleTrainResponse is a complete train lookup response
const SampleTrainResponse = `{
	"trainNumber": "12951",
	"trainName": "Mumbai Rajdhani",
	"nextStation": {"name": "Vadodara Jn"},
	"services": ["AC", "Pantry", "Bedroll"],
	"platformDetails": {"platformNumber": "3"},
	"coachDetails": [
		{"coachNumber": "H1", "coachType": "1A"},
		{"coachNumber": "A1", "coachType": "2A"}
	]
}`

// SampleMinimalTrainResponse omits every optional field
const SampleMinimalTrainResponse = `{
	"trainNumber": "12301",
	"trainName": "Howrah Rajdhani",
	"services": ["AC", "Pantry"]
}`

// SampleCoachTrainResponse carries two coaches and nothing else optional
const SampleCoachTrainResponse = `{
	"trainNumber": "12627",
	"trainName": "Karnataka Express",
	"coachDetails": [
		{"coachNumber": "A1", "coachType": "3A"},
		{"coachNumber": "B2", "coachType": "SL"}
	]
}`

// SampleNotFoundResponse is a typical error body from the API
const SampleNotFoundResponse = `{"message":"Train not found"}`
