//go:build eventhub_production

package eventhub

// Built with -tags eventhub_production: listener validation is off unless
// WithProductionMode(false) is passed.
const productionDefault = true
