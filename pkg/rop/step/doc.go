// Package step defines the contract for one link of a chain.
//
// A step implements Step. It may additionally implement one of the
// capabilities:
// - ExtrasProducer: also yields extras, handed to the single following step
// - ManyProducer: yields a slice; each element continues the rest of the
//   chain independently (fan-out, scheduler only)
//
// Capabilities are resolved once, when a chain is built, into a Kind.
//
// Every step receives the failure of the previous hop, if any. Base offers
// the two usual conventions for dealing with it:
// - FailFast: hand the failure to the local recovery hook right away
// - FailSlow: forward it to the next step, or to the hook at the end of
//   the chain
package step
