/*
Command lrgen builds canonical LR(1) parser tables for a grammar and runs
the generated parser.

    lrgen tables -g expr.txt --items
    lrgen parse  -g expr.toml "a + b * c"
    lrgen repl   -g expr.ebnf

Grammar files are read by package grammarfile, choosing the notation by
file extension.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
