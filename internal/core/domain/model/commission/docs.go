// Package commission implements tiered sales commission. A staff member's
// cumulative order count selects a tier; the tier's percentage of the invoice
// plus its fixed amount is accrued as a pending entry until it is paid.
package commission
