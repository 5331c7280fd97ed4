package domain

import "strings"

// KeyPrefix namespaces every cache key written by livesearch.
const KeyPrefix = "livesearch:"

// Catalog service endpoints.
const (
	ProductionEndpoint = "https://catalog-service.adobe.io/graphql"
	SandboxEndpoint    = "https://catalog-service-sandbox.adobe.io/graphql"
)

// EnvironmentTesting selects the sandbox endpoint.
const EnvironmentTesting = "testing"

// Endpoint holds the resolved catalog service location and key.
type Endpoint struct {
	URL    string
	APIKey string
}

// ResolveEndpoint picks the catalog endpoint for an environment type.
// The testing environment always goes to the sandbox and falls back to
// sandboxKey when apiKey is empty. Otherwise an empty apiURL means production.
func ResolveEndpoint(environmentType, apiURL, apiKey, sandboxKey string) Endpoint {
	if strings.EqualFold(environmentType, EnvironmentTesting) {
		key := apiKey
		if key == "" {
			key = sandboxKey
		}
		return Endpoint{URL: SandboxEndpoint, APIKey: key}
	}
	if apiURL == "" {
		apiURL = ProductionEndpoint
	}
	return Endpoint{URL: apiURL, APIKey: apiKey}
}
