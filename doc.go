/*
Package dhash provides an in-memory open-addressing hash table mapping
string keys to string values.

Table resolves collisions with double hashing and grows or shrinks itself
as entries come and go. It is meant to be embedded in a larger program and
is not safe for concurrent use.

Basic usage:

	import "github.com/theflywheel/dhash"

	ht, err := dhash.New()
	if err != nil {
		log.Fatal(err)
	}
	defer ht.Destroy()

	// Insert or update
	if err := ht.Insert("key", "val"); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	if v, ok := ht.Search("key"); ok {
		fmt.Println("Value:", v)
	}

	// Delete; deleting a missing key is a no-op
	ht.Delete("key")

Features:

  - Keys and values are copied on insert
  - Double hashing over a prime number of slots
  - Automatic growth when the load factor exceeds 70%
  - Automatic shrinkage when the load factor drops below 10%, never below 53 slots
  - Pluggable hash functions (polynomial by default, xxhash optional)
  - Resize tracing through a zap logger

Implementation Details:

Each slot is empty, a tombstone, or occupied by an entry. The probe
sequence of a key is (a + i*(b+1)) mod size, where a and b come from two
independent polynomial hashes with bases 193 and 389. Because size is
prime and b+1 lies in [1, size-1], the sequence visits every slot once in
size attempts.

Deleting a key leaves a tombstone so keys further along the same probe
chain stay reachable. Searches skip tombstones; inserts reuse the first
tombstone on the chain once the key is known to be absent. Tombstones are
only cleared by a resize, which rehashes every live entry into a fresh
slot array.
*/
package dhash
