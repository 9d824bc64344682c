package differ

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary describes how a page changed between two fetches.
type Summary struct {
	DiffStatistics
	// Samples quotes the first changed lines, prefixed with "+ " or "- ".
	Samples []string
	// Omitted counts changed lines not quoted in Samples.
	Omitted int
}

// String renders the summary for a notification body.
func (s Summary) String() string {
	if s.IsIdentical {
		return "no textual difference"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "+%d/-%d lines", s.LinesAdded, s.LinesDeleted)
	for _, line := range s.Samples {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if s.Omitted > 0 {
		fmt.Fprintf(&b, "\n(%d more changed lines)", s.Omitted)
	}
	return b.String()
}

// ContentDiffer generates differences between content versions
type ContentDiffer struct {
	processor *DiffProcessor
	config    DiffConfig
	logger    zerolog.Logger
}

// NewContentDiffer creates a new instance of ContentDiffer
func NewContentDiffer(cfg DiffConfig, logger zerolog.Logger) *ContentDiffer {
	if cfg.MaxSampleLineLength <= 0 {
		cfg.MaxSampleLineLength = DefaultDiffConfig().MaxSampleLineLength
	}
	return &ContentDiffer{
		processor: NewDiffProcessor(),
		config:    cfg,
		logger:    logger.With().Str("component", "ContentDiffer").Logger(),
	}
}

// Summarize compares two versions of a page. Binary content is counted but not quoted.
func (cd *ContentDiffer) Summarize(previousContent, currentContent []byte) Summary {
	diffs := cd.processor.ProcessLineDiff(string(previousContent), string(currentContent))
	summary := Summary{DiffStatistics: CalculateStats(diffs)}

	quote := utf8.Valid(previousContent) && utf8.Valid(currentContent)
	for _, diff := range diffs {
		prefix := ""
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range splitLines(diff.Text) {
			if !quote || len(summary.Samples) >= cd.config.MaxSummaryLines {
				summary.Omitted++
				continue
			}
			summary.Samples = append(summary.Samples, prefix+cd.clip(line))
		}
	}

	cd.logger.Debug().
		Int("lines_added", summary.LinesAdded).
		Int("lines_deleted", summary.LinesDeleted).
		Msg("Content diff computed")
	return summary
}

func (cd *ContentDiffer) clip(line string) string {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) <= cd.config.MaxSampleLineLength {
		return line
	}
	runes := []rune(line)
	return string(runes[:cd.config.MaxSampleLineLength]) + "..."
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
