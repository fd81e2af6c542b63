/*
Package mirror keeps a destination directory tree in step with a source tree
for a fixed set of file extensions.

A run is two independent walks. The prune pass walks the destination and
deletes every tracked file with no counterpart in the source. The copy pass
walks the source, recreates its directories under the destination and copies
every tracked file over, unconditionally, preserving modification time and
permission bits. Directories are never deleted.

Errors are not recovered: the first failure aborts the walk in progress and
the destination is left partially synchronised.
*/
package mirror
