// Command mathprose-solve runs one problem through the solver and prints the
// result as JSON. The problem text comes from the arguments, or stdin when no
// arguments are given
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"mathprose/internal/platform/logger"
	"mathprose/internal/services/solver/domain"
	solversvc "mathprose/internal/services/solver/service"
)

func main() {
	var (
		typ    = flag.String("type", "", "declared problem type: auto, algebra, calculus, geometry, word_problem, direct_equation")
		pretty = flag.Bool("pretty", true, "pretty-print JSON")
	)
	flag.Parse()

	// keep stdout clean for the JSON result
	logger.Init(logger.Options{Level: "error", Writer: os.Stderr})

	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail(err)
		}
		text = string(b)
	}

	svc := solversvc.New()
	res, err := svc.Solve(context.Background(), domain.Input{Text: text, DeclaredType: *typ})
	if err != nil {
		fail(err)
	}

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(res, "", "  ")
	} else {
		enc, err = json.Marshal(res)
	}
	if err != nil {
		fail(err)
	}
	fmt.Println(string(enc))
}

func fail(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
