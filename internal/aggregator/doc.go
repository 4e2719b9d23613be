// Package aggregator provides an HTTP implementation of the
// domain.AggregatorClient interface.
//
// An aggregator collects signed BLS bundles from many wallets, aggregates
// their signatures and submits them on chain. The client only posts a single
// bundle to <base>/bundle and decodes the answer.
//
// The response body is interpreted once, at this boundary, into one of:
//   - domain.BundleAccepted, when the body carries a "hash".
//   - domain.BundleRejected, when the body carries "failures". The raw body is
//     kept so callers can surface it verbatim.
//
// The body is read regardless of the HTTP status. A non-2xx status whose body
// matches neither shape, and any transport failure, is a
// *domain.ConnectionError.
package aggregator
