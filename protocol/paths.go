package protocol

import (
	"fmt"
	"path/filepath"

	"github.com/cskillzmartin/genmoji/catalog"
)

// OutputFileName derives the deterministic batch output path for one
// catalog item: emoji_<CODEPOINTS>_s<seed>[_b<batchIndex>].png under
// outputDir. The _b suffix appears only when the batch multiplier exceeds
// one, so single-pass runs keep stable names across re-runs.
// This is a pure function with no side effects.
func OutputFileName(outputDir, emojiChar string, seed int64, batchIndex, batchSize int) string {
	suffix := ""
	if batchSize > 1 {
		suffix = fmt.Sprintf("_b%d", batchIndex)
	}
	name := fmt.Sprintf("emoji_%s_s%d%s.png", catalog.Codepoints(emojiChar), seed, suffix)
	return filepath.Join(outputDir, name)
}

// DebugArtifactPaths derives the debug artifact names for a job's output
// path: the raw RGBA render and the flattened conditioning image. Both are
// deleted after a successful job.
func DebugArtifactPaths(outputPath string) (baseRGBA, conditioning string) {
	dir := filepath.Dir(outputPath)
	stem := stemOf(outputPath)
	return filepath.Join(dir, stem+".base_rgba.png"),
		filepath.Join(dir, stem+".conditioning.png")
}

func stemOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
