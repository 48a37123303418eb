package registry

// Key identifies a resource owned by a Table. Key 0 is reserved and always
// invalid; live keys are unique within one Table instance.
type Key uint32

// InvalidKey is the reserved "no key" sentinel. A name reservation that has
// not been finalized yet maps to InvalidKey.
const InvalidKey Key = 0
