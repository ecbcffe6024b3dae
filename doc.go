// Package sau implements a minimal archive container format.
//
// Merge concatenates a list of files into one container; Split reconstructs
// them into a directory. A container is a length-prefixed directory table
// followed by the raw bytes of every file in table order:
//
//	0000000026|a.txt,644,2||b.txt,644,3|hibye
//
// The first ten bytes give the length of the record section. Each record
// carries a file name, its permission bits and its size. Content has no
// separators; Split locates file boundaries from the recorded sizes alone.
//
// # Quick Start
//
// Merge two files:
//
//	table, err := sau.Merge(ctx, []string{"a.txt", "b.txt"}, "out.sau")
//	if err != nil {
//	    return err
//	}
//
// Split them back out as out/file1.txt and out/file2.txt:
//
//	table, err := sau.Split(ctx, "out.sau", "out")
//
// # Limits
//
// File names are capped at [MaxPathLength] bytes and may not contain ','
// or '|'. Containers are capped at [DefaultMaxTotalSize] unless a different
// limit is configured with [MergeWithMaxTotalSize] or [SplitWithMaxTotalSize].
package sau
