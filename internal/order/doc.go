// Package order defines the structured order record shared by the extraction
// and Business Central posting pipelines. The JSON field names form the fixed
// schema the vision model is instructed to return and the shape persisted as
// identified_order.json.
package order
