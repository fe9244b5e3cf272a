// Command safelint reports safe integer operations rejected by trap policies.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/safenum/lint"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
