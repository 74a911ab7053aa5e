/*
Package transaction implements the journal: create, update, delete and
bulk-delete of monetary events, each committed together with its derived
state.

Every mutation runs as one database transaction covering four writes:

  - the journal row itself
  - the MonthHistory bucket for the row's UTC calendar day
  - the YearHistory bucket for the row's UTC month
  - the owning account's running balance

Either all four commit or none do; a balance can never drift from the
buckets because of a crash between steps.

Updates are reconciled through ComputeDelta, a pure function over the
previous and current row snapshots. When the calendar day changes the
previous bucket is decremented by the old amount and the new bucket
receives the full new amount; on the same day only the signed difference
moves. Account balances follow the same difference when the account is
unchanged, otherwise the old account is reversed in full and the new one
charged in full.

After a committed mutation the user's cached stats entries are deleted,
never patched in place.
*/
package transaction
