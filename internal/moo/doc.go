// Package moo decodes MOO CPU test files.
//
// A MOO file is a stream of little-endian chunks, each a 4 byte ASCII tag
// followed by a 32 bit payload length and the payload itself. The file
// starts with a "MOO " header chunk followed by one "TEST" chunk per test
// case. A TEST payload holds the test index and a nested chunk stream
// (NAME, BYTS, INIT, FINA, CYCL, HASH), and INIT and FINA hold another
// nested stream (REGS, "RAM ", QUEU) describing a machine state.
//
// Every level is framed with ReadChunk, which never hands out bytes beyond
// the slice it was given. Problems inside a chunk payload are reported as
// Warning values attached to the decoded record and never stop decoding of
// sibling chunks. Only a broken top level framing stops a Walk.
package moo
