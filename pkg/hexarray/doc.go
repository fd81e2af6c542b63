/*
Package hexarray turns text files into C source files that embed the text as a
byte array, for firmware builds that link assets directly into flash.

The generated file has a fixed shape:

	#include "lvgl.h"

	const uint8_t hello[] = {
	    0x41, 0x42
	};
	const size_t hello_len = sizeof(hello);

Each character of the decoded text becomes one byte, so only code points up to
0xFF can be embedded unless UTF-8 encoding is requested. Characters outside the
7-bit ASCII range can be dropped beforehand, and a terminating zero byte can be
appended so the array doubles as a C string.

# Usage

	out, err := hexarray.EmitFile("assets/hello.txt", hexarray.Config{
		NullTerminate: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", out)
*/
package hexarray
