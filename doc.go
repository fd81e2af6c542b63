/*
Package lvtools collects two small command-line utilities that feed an LVGL
firmware build.

# Hex Array Emitter

filetohex turns a text asset into a C source file holding a byte array:

	filetohex assets/help.txt --null-terminate

writes assets/help.c:

	#include "lvgl.h"

	const uint8_t help[] = {
	    0x48, 0x69, 0x0
	};
	const size_t help_len = sizeof(help);

The encoder lives in package hexarray and can be used directly.

# Directory Mirror

uimirror keeps the generated UI sources of a design tool in sync with the
firmware tree. A run prunes destination files that no longer exist in the
source, then copies every tracked file (.c, .cpp, .h by default) across:

	uimirror ui/src components/ui
	uimirror --config uimirror.yaml --watch

The sync engine lives in package mirror. Settings come from a YAML file,
flags and positional arguments, in increasing order of precedence.
*/
package lvtools
