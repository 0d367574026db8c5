// Package order implements the order fulfillment state machine.
//
// An Order moves through the stages sales review, operation, operation manager
// review, client acceptance and shipping preparation before it is completed.
// Each stage has exactly one responsible party and only that party may accept
// or reject. Rejections either end the flow until sales resubmits the order
// (sales and operation rejections) or send it back one stage for rework
// (manager and client rejections).
//
// Every transition is appended to an immutable history ledger together with the
// status change and records exactly one domain event (StageAdvanced,
// OrderRejected or OrderCompleted) for the accounting side effects.
package order
