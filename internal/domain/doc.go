// Package domain defines the core business entities of the wardrobe
// catalog: user accounts and clothing items, their invariants, and the
// closed set of typed errors the rest of the application branches on.
package domain
