// Package stream runs the consume-filter-produce loop: a bootstrap
// phase that (re)connects to the broker after any transport failure,
// and an inner phase that processes one message per iteration until
// told to stop or until the broker signals there is nothing left to
// read.
package stream
