// Package state implements the nested key-value parameter store owned by
// every payload instance and by the engine.
//
// A State is a tree of map[string]any values addressed by a path of keys.
// Copies are always deep: Clone, Map and Merge never leave two States sharing
// a nested map, so a child payload can receive its parent's parameters and
// hand them back without either side observing the other's later writes.
//
// Command line style arguments (--a.b=c) are turned into a State with
// FromArgs; dots in the key address nested levels.
package state
