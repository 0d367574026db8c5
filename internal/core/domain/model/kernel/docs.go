// Package kernel provides the value objects shared by every aggregate of the
// fulfillment domain:
//   - UUID: identifier wrapper around github.com/google/uuid
//   - Currency: an ISO 4217 currency code validated with golang.org/x/text/currency
//   - Money: a decimal amount bound to a currency (github.com/shopspring/decimal)
//
// All of them are immutable and their zero values are invalid; use the
// constructors.
package kernel
