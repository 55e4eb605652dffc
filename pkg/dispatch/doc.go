// Package dispatch runs the signal path: it takes raw ConnMan signals in
// arrival order, decodes them with package signal and fans the decoded
// events out to subscribers.
//
// Fan-out goes through a Hub. Each Subscription owns a bounded channel
// (DefaultBufferSize pending notifications unless configured otherwise).
// Delivery never blocks the dispatch path: a full channel drops the
// notification for that subscriber only and logs a warning. A subscriber
// leaves by calling Close; the hub notices on its next publish, removes
// the subscription and closes its channel.
//
// Outcomes and deliveries are counted in optional Prometheus metrics, and
// every handled message can be written to a protocol capture log.
package dispatch
