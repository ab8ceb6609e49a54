package lexicon

import (
	"bufio"
	"os"

	"modgate/internal/platform/logger"
)

// FromFile reads a line-oriented dictionary and builds the index.
// A missing, unreadable or empty file yields a zero-term index; the lexicon
// stage is then inert, which is degraded-but-safe, never fatal
func FromFile(path string) *Index {
	log := logger.Named("lexicon")

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary unavailable, lexicon disabled")
		return Build(nil)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary read truncated")
	}

	ix := Build(words)
	if ix.Terms() == 0 {
		log.Warn().Str("path", path).Msg("dictionary empty, lexicon disabled")
	} else {
		log.Info().Str("path", path).Int("terms", ix.Terms()).Msg("dictionary loaded")
	}
	return ix
}
