package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	assert.Equal(t, "iv", Page(map[string]string{MetaPageLabel: "iv", MetaPageNumber: "4"}))
	assert.Equal(t, "4", Page(map[string]string{MetaPageNumber: "4"}))
	assert.Equal(t, PageUnknown, Page(map[string]string{MetaFileName: "a.pdf"}))
	assert.Equal(t, PageUnknown, Page(nil))
}
