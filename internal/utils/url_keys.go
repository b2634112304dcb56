package utils

const (
	// ActivityIdKey is the key for the activity ID used in routing parameters.
	ActivityIdKey = "id"

	// ActivityTypeKey is the key for the activity type used in routing parameters.
	ActivityTypeKey = "type"

	// LenFirstKey is the key for the first segment of the /activities/len routes.
	// It holds the amount in the one-segment form and the type in the two-segment form.
	LenFirstKey = "first"

	// AmountKey is the key for the amount in the two-segment /activities/len route.
	AmountKey = "amount"
)
