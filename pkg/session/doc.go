/*
Package session serializes access to conversations.

A conversation is owned by one engine invocation at a time. The Manager keeps
one reference-counted mutex per session ID and, when configured with a
DistributedLocker, also holds a cross-replica lock, so that read-modify-write
cycles (load, handle a user message, save) never interleave.
*/
package session
