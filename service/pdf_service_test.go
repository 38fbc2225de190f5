package service

import (
	"path/filepath"
	"testing"

	"github.com/phamtrung99/ragdex/types"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Run("ShouldStripControlCharacters", func(t *testing.T) {
		assert.Equal(t, "hello world", cleanText("hello\x00 �world\r"))
	})
	t.Run("ShouldTurnFormFeedsIntoNewlines", func(t *testing.T) {
		assert.Equal(t, "a\nb", cleanText("a\fb"))
	})
	t.Run("ShouldCollapseDoubleSpaces", func(t *testing.T) {
		assert.Equal(t, "a b", cleanText("a  b"))
	})
	t.Run("ShouldTrimSurroundingWhitespace", func(t *testing.T) {
		assert.Equal(t, "text", cleanText("  text \n"))
	})
}

func TestPDFServiceLoadMissingFile(t *testing.T) {
	svc := NewPDFService()
	_, err := svc.Load(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.ErrorIs(t, err, types.ErrLoad)
}
