// Package chain links steps into an immutable, ordered chain.
//
// Steps hold no linkage themselves, so the same stateless step may sit in
// any number of chains, and a chain cannot loop back on itself. A Cursor
// marks one link and plays the role of "this step and its next pointer".
//
// Key operations:
// - New/Must: build a chain, classifying every step's capability once
// - Head: cursor on the first step
// - Cursor.Next/HasNext: walk the links in order
// - Cursor.HasMany: whether fan-out happens anywhere from here on
package chain
