// modgate-scan runs the moderation pipeline over a single text and prints
// the verdict. Useful for tuning lexicons and classifier thresholds offline.
// Exits 0 when the text passes, 1 when it is flagged
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"modgate/internal/core/classify"
	"modgate/internal/core/lexicon"
	"modgate/internal/core/moderate"
	"modgate/internal/platform/logger"
)

func main() {
	var (
		fText      = flag.String("text", "", "text to scan (default: read stdin)")
		fDict      = flag.String("dict", "", "path to the lexicon file (one term per line)")
		fModel     = flag.String("model", "", "path to the classifier artifact (optional)")
		fThreshold = flag.Float64("threshold", moderate.DefaultThreshold, "classifier flag threshold")
		fVerbose   = flag.Bool("v", false, "print per-stage detail")
	)
	flag.Parse()

	l := logger.Get()

	text := *fText
	if text == "" {
		raw, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			l.Fatal().Err(err).Msg("read stdin")
		}
		text = string(raw)
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "nothing to scan: pass -text or pipe stdin")
		os.Exit(2)
	}

	holder := lexicon.NewHolder(lexicon.FromFile(*fDict))

	var scorer moderate.Scorer
	if *fModel != "" {
		model, err := classify.Load(*fModel)
		if err != nil {
			l.Fatal().Err(err).Str("path", *fModel).Msg("load classifier artifact")
		}
		scorer = model
	}

	mod := moderate.New(
		moderate.NewPrimary(holder, nil),
		moderate.NewAdvanced(scorer, *fThreshold),
	)
	if *fVerbose {
		mod.Observe = func(stage string, v moderate.Verdict, conf float64) {
			fmt.Printf("stage=%s safe=%t confidence=%.4f reason=%q\n", stage, v.IsSafe, conf, v.Reason)
		}
	}

	v := mod.Moderate(text)
	if v.IsSafe {
		fmt.Println("safe")
		return
	}
	fmt.Printf("flagged: %s\n", v.Reason)
	os.Exit(1)
}
