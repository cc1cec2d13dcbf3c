// Package arming holds the operating mode of the hub and the armed flag
// derived from it.
//
// Mode changes are the only mutation path. Two policies decide what leaving
// Away does to the armed flag: PolicyClearing disarms on Day and Night, while
// PolicySticky keeps the flag set once armed, which is how the first hub
// release behaved and what its old logs reflect.
package arming
