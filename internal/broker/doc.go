// Package broker defines the distributed-log contract the stream runner
// depends on: a Consumer that yields a tagged event union (message,
// timeout, partition EOF, unknown topic/partition, or error) and a
// Producer that accepts redacted payloads for republishing. Concrete
// adapters live in subpackages — kafkabroker wraps a real broker client,
// memory is an in-process double for tests.
package broker
