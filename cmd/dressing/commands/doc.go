// Package commands defines the dressing CLI.
//
// Commands
//
//   - price   Price one dressing from flags
//   - zones   List transport zones and fees
//   - quote   Write a quote document (pdf, xlsx or html)
//
// # Implementation
//
// The root command loads the tariff before any subcommand runs, from the
// --tariff file, the database named by DATABASE_URL, PRICING_CONFIG or the
// built-in price list, in that order, and shares one pricing engine.
package commands
