/*
Package session serializes concurrent access to save slots.

It wraps a SaveStore with per-slot mutexes so multiple hosts (HTTP handlers,
background savers) can share one store without interleaving a read-modify-write
on the same slot.
*/
package session
