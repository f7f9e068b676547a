// Package catalog holds the sales master data (customers and items) and the
// product picture catalog, plus the fuzzy matchers used to repair extracted
// order records against that master data.
//
// The picture catalog is a directory of product photos whose filenames encode
// the item they show; those images are fed to the vision model so customers
// can order by attaching a photo of the product.
package catalog
