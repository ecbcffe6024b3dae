// Package dirtable implements the directory table at the head of a sau
// container: an ordered list of file records and its length-prefixed,
// pipe-delimited text encoding.
//
// A container header looks like:
//
//	0000000026|a.txt,644,2||b.txt,644,3|
//
// The first ten bytes are the zero-padded decimal length of the record
// section that follows. Every record is wrapped in its own pair of pipes
// and carries name, permissions and size separated by commas. Commas and
// pipes are reserved and are never escaped.
package dirtable
