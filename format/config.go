package format

import (
	"fmt"

	"github.com/Urethramancer/fmt68/source"
)

// Config holds the formatting policy. It is fixed for the duration of a run.
type Config struct {
	// TabWidth is the alignment unit every tabstop is a multiple of.
	TabWidth int `toml:"tab_width"`
	// RewriteCommentPrefix replaces every comment prefix with CommentPrefix.
	RewriteCommentPrefix bool `toml:"rewrite_comment_prefix"`
	// CommentPrefix is ";" or "*".
	CommentPrefix string `toml:"comment_prefix"`
	// LabelColon forces a colon after (true) or strips it from (false) standalone labels.
	LabelColon bool `toml:"label_colon"`
}

// DefaultConfig returns the built-in policy.
func DefaultConfig() Config {
	return Config{
		TabWidth:      4,
		CommentPrefix: ";",
		LabelColon:    true,
	}
}

// Validate checks the configuration for values the formatter cannot use.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("invalid tab width %d: must be at least 1", c.TabWidth)
	}
	if len(c.CommentPrefix) != 1 || !source.IsCommentPrefix(rune(c.CommentPrefix[0])) {
		return fmt.Errorf("invalid comment prefix %q: must be ';' or '*'", c.CommentPrefix)
	}
	return nil
}
