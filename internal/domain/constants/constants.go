// Package constants defines shared constant values used across layers.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// RecentOrderItemsLimit caps the rolling list of recently ordered items
// kept per user in the session store.
const RecentOrderItemsLimit = 10
