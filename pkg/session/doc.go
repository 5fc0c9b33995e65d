/*
Package session implements session management and persistence orchestration.

A session is a saved navigation state keyed by id. The Manager serialises
access per session id across goroutines (and, with a distributed locker,
across replicas) so read-modify-write moves never lose updates.
*/
package session
