// Command doogie renders, inspects and edits CommonMark documents.
//
// Usage:
//
//	doogie render [--format xml] [files...]
//	doogie tree <file>
//	doogie strip --type html_block,image <file>
//	doogie browse <file>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd(osFiles{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
