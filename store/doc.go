// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns the in-memory poll state and every operation on it.

A Store holds the delivery, food, and vote collections behind one mutex.
Mutations build new slices rather than editing in place, so snapshots handed
to the save worker or to readers never change underneath them.

# Persistence

Each mutation bumps a version number and queues a snapshot for the
background save worker. The queue holds one entry; a newer snapshot
replaces an older unsaved one, and a save never overwrites a newer version
that already reached the Persister. Replace saves synchronously and returns
the Persister's error to the caller. Close flushes the last queued snapshot.

# Days

"Today" is the UTC calendar day of the injected Clock, formatted as
YYYY-MM-DD. Votes, the vote toggle, ClearDailyVotes, and the report all
scope to that day.

# Integrity

Deleting a delivery removes its foods and their votes; deleting a food
removes its votes. AddFood and CastOrRetractVote check their references
under the lock, so no operation can leave a dangling reference behind.
Validate enforces the same rules on snapshots coming from outside.
*/
package store
