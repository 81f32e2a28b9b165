//go:build !eventhub_production

package eventhub

const productionDefault = false
